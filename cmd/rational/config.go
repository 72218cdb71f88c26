package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	formatFraction = "fraction"
	formatDecimal  = "decimal"

	defaultPrecision = 16
)

// config represents CLI configuration read from rational.toml.
type config struct {
	Format    string `toml:"format"`
	Precision int32  `toml:"precision"`
	Engine    string `toml:"engine"`
	NoColor   bool   `toml:"no_color"`
}

// loadConfig loads configuration from path. Missing or invalid files yield defaults.
func loadConfig(path string) config {
	c := config{
		Format:    formatFraction,
		Precision: defaultPrecision,
		Engine:    engineNative,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Config file doesn't exist, return defaults
		return c
	}

	var fileConfig config
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		// Invalid TOML, return defaults
		return c
	}

	// Use values from file if provided, otherwise keep defaults
	if fileConfig.Format != "" {
		c.Format = fileConfig.Format
	}
	if fileConfig.Precision > 0 {
		c.Precision = fileConfig.Precision
	}
	if fileConfig.Engine != "" {
		c.Engine = fileConfig.Engine
	}
	c.NoColor = fileConfig.NoColor

	return c
}
