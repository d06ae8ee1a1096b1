// Package config loads runtime configuration for the authkeeper CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string     address:port of the backend gRPC endpoint
//	-t duration   per-request timeout
//
// The JSON file uses timex.Duration for the timeout:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "5s"
//	}
package config
