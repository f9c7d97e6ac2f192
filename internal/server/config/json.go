package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the DTO read from the JSON config file. Pointer fields tell
// an absent key from a zero value; durations use timex.Duration so both "1m"
// and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDriver              *string         `json:"database_driver"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	MaxFailedLogins             *int            `json:"max_failed_logins"`
	LockoutWindow               *timex.Duration `json:"lockout_window"`
	RedisAddr                   *string         `json:"redis_addr"`
	TLSCertFile                 *string         `json:"tls_cert_file"`
	TLSKeyFile                  *string         `json:"tls_key_file"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson overlays config with the JSON file named by -c or -config. If
// neither flag is given nothing is loaded. Unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	for dst, src := range map[*string]*string{
		&config.EndpointAddrGRPC: c.EndpointAddrGRPC,
		&config.DatabaseDriver:   c.DatabaseDriver,
		&config.DatabaseDSN:      c.DatabaseDSN,
		&config.SecretKey:        c.SecretKey,
		&config.RedisAddr:        c.RedisAddr,
		&config.TLSCertFile:      c.TLSCertFile,
		&config.TLSKeyFile:       c.TLSKeyFile,
		&config.LogLevel:         c.LogLevel,
	} {
		if src != nil {
			*dst = *src
		}
	}

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.LockoutWindow != nil {
		config.LockoutWindow = c.LockoutWindow.Duration
	}
	if c.MaxFailedLogins != nil {
		config.MaxFailedLogins = *c.MaxFailedLogins
	}
}
