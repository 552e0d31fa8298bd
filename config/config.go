// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"cubicacion/services"
)

// ErrMissingDataDir is returned when OBRA_DB_PATH is not set.
var ErrMissingDataDir = errors.New("OBRA_DB_PATH is required")

// Config holds all runtime configuration.
type Config struct {
	DataDir  string `mapstructure:"OBRA_DB_PATH"`
	Addr     string `mapstructure:"HTTP_ADDR"`
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Prices in CLP keyed by insulation structure type and board type.
	InsulationPrices map[string]int64       `mapstructure:"-"`
	BoardPrices      map[string]int64       `mapstructure:"-"`
	Contributors     []services.Contributor `mapstructure:"-"`
}

// Production reports whether the app runs with APP_ENV=production.
func (c *Config) Production() bool {
	return c.Env == "production"
}

var defaultInsulationPrices = map[string]int64{
	"muro_exterior":    2964,
	"cielo_techumbre":  6250,
	"tabique_interior": 1482,
}

var defaultBoardPrices = map[string]int64{
	"ST_CIELO":   9392,
	"ST_TABIQUE": 9392,
	"RH":         15289,
	"RF":         0,
	"ACU":        0,
}

// priceKey is the env var overriding the price of a product id, e.g.
// PRECIO_MURO_EXTERIOR or PRECIO_ST_CIELO.
func priceKey(id string) string {
	return "PRECIO_" + strings.ToUpper(id)
}

// contributionKey is the env var overriding a contributor's budget share.
func contributionKey(id string) string {
	return "APORTE_" + strings.ToUpper(id)
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", "127.0.0.1:8090")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	for id, price := range defaultInsulationPrices {
		v.SetDefault(priceKey(id), price)
	}
	for id, price := range defaultBoardPrices {
		v.SetDefault(priceKey(id), price)
	}
	for _, c := range services.DefaultContributors {
		v.SetDefault(contributionKey(c.ID), c.Contribution)
	}
	// AutomaticEnv only resolves keys viper already knows about.
	_ = v.BindEnv("OBRA_DB_PATH")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return nil, ErrMissingDataDir
	}

	cfg.InsulationPrices = make(map[string]int64, len(services.InsulationTypes))
	for _, t := range services.InsulationTypes {
		cfg.InsulationPrices[t.ID] = v.GetInt64(priceKey(t.ID))
	}
	cfg.BoardPrices = make(map[string]int64, len(services.VolcanitaTypes))
	for _, t := range services.VolcanitaTypes {
		cfg.BoardPrices[t.ID] = v.GetInt64(priceKey(t.ID))
	}
	cfg.Contributors = make([]services.Contributor, len(services.DefaultContributors))
	for i, c := range services.DefaultContributors {
		c.Contribution = v.GetInt64(contributionKey(c.ID))
		cfg.Contributors[i] = c
	}
	return cfg, nil
}
