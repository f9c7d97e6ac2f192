// Package config loads runtime configuration for the gophauth clients
// (terminal and web).
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   verification backend: demo or grpc
//	-a string   address:port of the backend gRPC endpoint
//	-ca string  CA certificate file for TLS to the backend
//	-d int      simulated demo backend delay (milliseconds)
//	-t int      per-attempt request timeout (seconds)
//	-r uint     attempts for transient backend failures
//	-m string   start mode: login or signup
//	-w string   listen address of the web surface
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "2s" or integer
// nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "backend": "grpc",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "demo_delay": "2s",
//	  "request_timeout": "10s",
//	  "retry_attempts": 3,
//	  "retry_delay": "200ms",
//	  "start_mode": "login",
//	  "web_addr": "127.0.0.1:8080",
//	  "log_level": "info"
//	}
package config
