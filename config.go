package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const defaultInput = "CronoHash Prime Core v1"

// Config holds environment defaults; command-line flags override them.
type Config struct {
	Input       string  `env:"CRONOHASH_INPUT"      envDefault:"CronoHash Prime Core v1"`
	BindingMs   float64 `env:"CRONOHASH_BINDING_MS" envDefault:"0"`
	Mode        string  `env:"CRONOHASH_MODE"       envDefault:"BALANCED"`
	BitStrength int     `env:"CRONOHASH_BITS"       envDefault:"256"`
	KEMScheme   string  `env:"CRONOHASH_KEM"        envDefault:"Kyber512"`
	Workers     int     `env:"CRONOHASH_WORKERS"    envDefault:"0"`
}

// LoadConfig reads the CRONOHASH_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse env")
	}
	if cfg.Input == "" {
		cfg.Input = defaultInput
	}
	return cfg, nil
}
