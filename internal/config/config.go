package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the application.
// Following 12-factor app principles, all config is loaded from environment
// variables once at startup; there is no live reload.
type Config struct {
	Server     ServerConfig
	Latency    LatencyConfig
	Faults     FaultsConfig
	RandomSeed int64  `env:"RANDOM_SEED" envDefault:"0"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string `env:"PORT" envDefault:"8080"`
	Host            string `env:"HOST" envDefault:"0.0.0.0"`
	ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"15"`
	WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"`
}

// LatencyConfig configures the simulated latency per route tier, plus the
// chaos amplification applied on top of every tier.
type LatencyConfig struct {
	BaseMS          int  `env:"BASE_LATENCY_MS" envDefault:"50"`
	ProductMS       int  `env:"PRODUCT_LATENCY_MS" envDefault:"200"`
	CartMS          int  `env:"CART_LATENCY_MS" envDefault:"300"`
	CheckoutMS      int  `env:"CHECKOUT_LATENCY_MS" envDefault:"800"`
	ChaosMode       bool `env:"CHAOS_MODE" envDefault:"false"`
	ChaosMultiplier int  `env:"CHAOS_LATENCY_MULTIPLIER" envDefault:"10"`
}

// FaultsConfig configures the probabilistic failure gates.
type FaultsConfig struct {
	DBFailureRate      float64 `env:"DB_FAILURE_RATE" envDefault:"0.05"`
	PaymentFailureRate float64 `env:"PAYMENT_FAILURE_RATE" envDefault:"0.10"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	for name, ms := range map[string]int{
		"BASE_LATENCY_MS":     c.Latency.BaseMS,
		"PRODUCT_LATENCY_MS":  c.Latency.ProductMS,
		"CART_LATENCY_MS":     c.Latency.CartMS,
		"CHECKOUT_LATENCY_MS": c.Latency.CheckoutMS,
	} {
		if ms < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if c.Latency.ChaosMultiplier < 1 {
		return fmt.Errorf("CHAOS_LATENCY_MULTIPLIER must be at least 1")
	}

	if c.Faults.DBFailureRate < 0 || c.Faults.DBFailureRate > 1 {
		return fmt.Errorf("DB_FAILURE_RATE must be between 0 and 1")
	}

	if c.Faults.PaymentFailureRate < 0 || c.Faults.PaymentFailureRate > 1 {
		return fmt.Errorf("PAYMENT_FAILURE_RATE must be between 0 and 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
