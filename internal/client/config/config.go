package config

import "time"

// Backend names accepted by -b.
const (
	BackendDemo = "demo"
	BackendGRPC = "grpc"
)

// Config holds runtime settings for the gophauth clients.
//
// Fields:
//   - Backend: which verification backend to use, BackendDemo or BackendGRPC.
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - CAFile: PEM bundle used to verify the server; empty means plaintext.
//   - DemoDelay: simulated latency of the demo backend.
//   - RequestTimeout: upper bound for one verification attempt.
//   - RetryAttempts / RetryDelay: retry policy for transient backend failures.
//   - StartMode: "login" or "signup", the mode the entry form opens in.
//   - WebAddr: listen address of the HTML surface.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Backend            string
	ServerEndpointAddr string
	CAFile             string
	DemoDelay          time.Duration
	RequestTimeout     time.Duration
	RetryAttempts      uint
	RetryDelay         time.Duration
	StartMode          string
	WebAddr            string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendDemo
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.CAFile = ""
	c.DemoDelay = 2 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.RetryAttempts = 3
	c.RetryDelay = 200 * time.Millisecond
	c.StartMode = "login"
	c.WebAddr = "127.0.0.1:8080"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
