package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish an absent key from a zero value.
type JsonConfig struct {
	Backend            *string         `json:"backend"`
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	CAFile             *string         `json:"ca_file"`
	DemoDelay          *timex.Duration `json:"demo_delay"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	RetryAttempts      *uint           `json:"retry_attempts"`
	RetryDelay         *timex.Duration `json:"retry_delay"`
	StartMode          *string         `json:"start_mode"`
	WebAddr            *string         `json:"web_addr"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by -c
// or -config. Without either flag it does nothing. Read or unmarshal errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.CAFile, jc.CAFile)
	setString(&cfg.StartMode, jc.StartMode)
	setString(&cfg.WebAddr, jc.WebAddr)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.DemoDelay != nil {
		cfg.DemoDelay = jc.DemoDelay.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryDelay != nil {
		cfg.RetryDelay = jc.RetryDelay.Duration
	}
	if jc.RetryAttempts != nil {
		cfg.RetryAttempts = *jc.RetryAttempts
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
