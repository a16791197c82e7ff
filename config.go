package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ==================== CONFIGURATION STRUCTURES ====================

type SearchConfig struct {
	Threads int `json:"threads" yaml:"threads" mapstructure:"threads"`
}

type LookupConfig struct {
	NameFile string `json:"name_file" yaml:"name_file" mapstructure:"name_file"`
	NameDB   string `json:"name_db" yaml:"name_db" mapstructure:"name_db"`
}

type OutputConfig struct {
	ResultsDir     string `json:"results_dir" yaml:"results_dir" mapstructure:"results_dir"`
	FilenamePrefix string `json:"filename_prefix" yaml:"filename_prefix" mapstructure:"filename_prefix"`
	SaveHits       bool   `json:"save_hits" yaml:"save_hits" mapstructure:"save_hits"`
	SaveStats      bool   `json:"save_stats" yaml:"save_stats" mapstructure:"save_stats"`
	Verbose        bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	LogLevel       string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

type Config struct {
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Lookup LookupConfig `json:"lookup" yaml:"lookup" mapstructure:"lookup"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`

	// Internal fields
	loadedFrom string
}

// ==================== CONFIGURATION MANAGEMENT ====================

func loadConfigFromFile(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	// Set defaults
	setDefaults()

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Calculate dynamic values
	calculateDynamicValues(&cfg)

	cfg.loadedFrom = viper.ConfigFileUsed()

	return &cfg, nil
}

func setDefaults() {
	// Search defaults
	viper.SetDefault("search.threads", 0) // 0 = all CPU cores

	// Lookup defaults
	viper.SetDefault("lookup.name_file", "names.csv")
	viper.SetDefault("lookup.name_db", "")

	// Output defaults
	viper.SetDefault("output.results_dir", "")
	viper.SetDefault("output.filename_prefix", "eaid")
	viper.SetDefault("output.save_hits", true)
	viper.SetDefault("output.save_stats", true)
	viper.SetDefault("output.verbose", false)
	viper.SetDefault("output.log_level", "info")
}

func validateConfig(cfg *Config) error {
	if cfg.Search.Threads < 0 {
		return fmt.Errorf("threads cannot be negative")
	}
	if cfg.Search.Threads > 1024 {
		return fmt.Errorf("threads too large (max 1024)")
	}
	return nil
}

func calculateDynamicValues(cfg *Config) {
	// Resolve worker count if auto
	if cfg.Search.Threads <= 0 {
		cfg.Search.Threads = runtime.NumCPU()
	}
	if cfg.Search.Threads < 1 {
		cfg.Search.Threads = 1
	}

	// Verbose implies debug logging
	if cfg.Output.Verbose {
		cfg.Output.LogLevel = "debug"
	}
}

func createDefaultConfig() *Config {
	cfg := &Config{}

	// Apply defaults
	setDefaults()
	viper.Unmarshal(cfg)

	// Ensure dynamic values are calculated
	calculateDynamicValues(cfg)

	return cfg
}

func saveDefaultConfig(path string, cfg *Config) error {
	// Create directory if needed
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// Marshal config to YAML (not JSON)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Add header
	header := `# EAID Hunter Configuration v` + Version + `
# Generated automatically on ` + time.Now().Format("2006-01-02 15:04:05") + `
# Documentation: https://github.com/DESN131/Battlefield1-ID-Generator

`

	return os.WriteFile(path, []byte(header+string(data)), 0644)
}
