package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-a", "-ca", "-d", "-t", "-r", "-m", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "verification backend (demo|grpc)")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.CAFile, "ca", cfg.CAFile, "CA certificate file for TLS")
	demoDelay := fs.Int("d", int(cfg.DemoDelay.Milliseconds()), "demo backend delay (in milliseconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.UintVar(&cfg.RetryAttempts, "r", cfg.RetryAttempts, "attempts for transient failures")
	fs.StringVar(&cfg.StartMode, "m", cfg.StartMode, "start mode (login|signup)")
	fs.StringVar(&cfg.WebAddr, "w", cfg.WebAddr, "web listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.DemoDelay = time.Duration(*demoDelay) * time.Millisecond
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
