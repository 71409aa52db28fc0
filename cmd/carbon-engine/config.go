package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's runtime settings. DatabaseURL selects the record
// store: a Postgres DSN enables the SQL store, an empty value falls back to
// the in-memory store.
type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`
	DatabaseURL     string        `yaml:"database_url"`
	LogLevel        string        `yaml:"log_level"`
	SeedOnStart     bool          `yaml:"seed_on_start"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func defaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",
		LogLevel:        "info",
		SeedOnStart:     true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// parseConfig resolves settings in increasing precedence: defaults, YAML
// config file, environment, then explicitly set flags.
func parseConfig(args []string) (*Config, error) {
	config := defaultConfig()

	fs := flag.NewFlagSet("carbon-engine", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to YAML config file")
	fs.StringVar(&config.ListenAddr, "listen", config.ListenAddr, "Address to listen on")
	fs.StringVar(&config.DatabaseURL, "database-url", config.DatabaseURL, "Postgres DSN; empty uses the in-memory store")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level (trace, debug, info, warn, error)")
	fs.BoolVar(&config.SeedOnStart, "seed-on-start", config.SeedOnStart, "Seed the default emission factor catalog at startup")
	fs.DurationVar(&config.ShutdownTimeout, "shutdown-timeout", config.ShutdownTimeout, "Graceful shutdown deadline")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *configFile != "" {
		if err := loadConfigFile(*configFile, config); err != nil {
			return nil, err
		}
	}

	applyEnv(config)

	// Explicit flags win over file and environment values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			config.ListenAddr = f.Value.String()
		case "database-url":
			config.DatabaseURL = f.Value.String()
		case "log-level":
			config.LogLevel = f.Value.String()
		case "seed-on-start":
			config.SeedOnStart = f.Value.String() == "true"
		case "shutdown-timeout":
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				config.ShutdownTimeout = d
			}
		}
	})

	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(config *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		config.ListenAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
}
