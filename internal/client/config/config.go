package config

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Config holds runtime settings for the authkeeper CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerEndpointAddr, validation.Required),
		validation.Field(&c.RequestTimeout, validation.By(func(any) error {
			if c.RequestTimeout <= 0 {
				return errors.New("must be positive")
			}
			return nil
		})),
	)
}

// LoadConfig builds a Config from defaults, then the JSON file, then flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
