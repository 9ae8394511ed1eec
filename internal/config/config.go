package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	MongoURI    string `yaml:"mongo_uri"`
	MongoDB     string `yaml:"mongo_db"`
	JWTSecret   string `yaml:"jwt_secret"`
	CORSOrigins string `yaml:"cors_origins"`
}

// Load builds the configuration from an optional YAML file (pointed at
// by CONFIG_FILE) with environment variables taking precedence.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        "8080",
		Environment: "dev",
		MongoURI:    "mongodb://localhost:27017",
		MongoDB:     "mediquip",
		CORSOrigins: "http://localhost:3000",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	overlayEnv(&cfg.Port, "PORT")
	overlayEnv(&cfg.Environment, "ENVIRONMENT")
	overlayEnv(&cfg.MongoURI, "MONGO_URI")
	overlayEnv(&cfg.MongoDB, "MONGO_DB")
	overlayEnv(&cfg.JWTSecret, "JWT_SECRET")
	overlayEnv(&cfg.CORSOrigins, "CORS_ORIGINS")

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func overlayEnv(dest *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dest = value
	}
}
