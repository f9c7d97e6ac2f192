package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-driver", "sqlite", "-d", "file::memory:", "-s", "secret",
			"-t", "1", "-f", "3", "-lw", "10", "-redis", "redis:6379", "-cert", "c.pem", "-key", "k.pem", "-l", "debug",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrGRPC:            "127.0.0.1:9090",
				DatabaseDriver:              "sqlite",
				DatabaseDSN:                 "file::memory:",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 1 * time.Minute,
				MaxFailedLogins:             3,
				LockoutWindow:               10 * time.Minute,
				RedisAddr:                   "redis:6379",
				TLSCertFile:                 "c.pem",
				TLSKeyFile:                  "k.pem",
				LogLevel:                    "debug",
			}},
		{name: "bad minutes", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
		{name: "bad failures", args: []string{"cmd", "-f=many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
