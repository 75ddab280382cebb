package config

import (
	"os"
	"strconv"

	"lipidflow/domain/run"
	"lipidflow/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis run.Params
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional run-archive database settings. An empty
// URL selects the in-memory archive.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it.
// Analysis defaults come from run.DefaultParams and can be overridden per
// variable; requests may override them again per run.
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Analysis: loadAnalysisParams(),
	}

	if err := config.Analysis.Validate(); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "configuration validation failed")
	}
	return config, nil
}

func loadAnalysisParams() run.Params {
	p := run.DefaultParams()
	p.GeneIDColumn = getEnvOrDefault("GENE_ID_COLUMN", p.GeneIDColumn)
	p.LipidIDColumn = getEnvOrDefault("LIPID_ID_COLUMN", p.LipidIDColumn)
	p.BeigeGenePrefix = getEnvOrDefault("BEIGE_GENE_PREFIX", p.BeigeGenePrefix)
	p.WhiteGenePrefix = getEnvOrDefault("WHITE_GENE_PREFIX", p.WhiteGenePrefix)
	p.BeigeLipidPrefix = getEnvOrDefault("BEIGE_LIPID_PREFIX", p.BeigeLipidPrefix)
	p.WhiteLipidPrefix = getEnvOrDefault("WHITE_LIPID_PREFIX", p.WhiteLipidPrefix)
	p.GeneFCThreshold = getEnvFloatOrDefault("GENE_FC_THRESHOLD", p.GeneFCThreshold)
	p.LipidFCThreshold = getEnvFloatOrDefault("LIPID_FC_THRESHOLD", p.LipidFCThreshold)
	p.TopGenesCount = getEnvIntOrDefault("TOP_GENES_COUNT", p.TopGenesCount)
	return p
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
