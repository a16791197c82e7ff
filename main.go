// main.go - BATTLEFIELD 1 EAID HUNTER v2.1
// Parallel wildcard search over the 64-character EAID alphabet
// Incremental checksum evaluation, name-table lookup, CSV/JSON results

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ==================== VERSION & BUILD INFO ====================
const (
	Version   = "2.1.0"
	BuildDate = "2026-08-20"
	Author    = "DESN131"
	License   = "MIT"
)

// ==================== COMMAND LINE INTERFACE ====================
var rootCmd = &cobra.Command{
	Use:     "eaid-hunter <pattern> <target-hex|0>",
	Short:   "Battlefield 1 EAID brute-force search engine",
	Version: Version,
	Long: `A high-performance parallel search engine for Battlefield 1 EAIDs.

Enumerates every combination of the 64-character ID alphabet over the '@'
wildcard positions of <pattern> and reports candidates whose checksum equals
<target-hex>. Pass 0 as the target to match against every checksum in the
name table instead.`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		// Load configuration
		cfg, err := loadConfig()
		if err != nil {
			fmt.Printf("Configuration error: %v\n", err)
			os.Exit(1)
		}

		// Create hunter
		hunter, err := NewHunter(cfg, args[0], args[1])
		if err != nil {
			fmt.Printf("Initialization error: %v\n", err)
			os.Exit(exitCodeFor(err))
		}

		// Cancel on Ctrl-C, workers drain at their next batch boundary
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Run
		if err := hunter.Run(ctx); err != nil {
			fmt.Printf("Runtime error: %v\n", err)
			os.Exit(1)
		}
	},
}

// exitCodeFor keeps the historical exit codes: 2 for an oversized pattern,
// 3 for an unparseable target, 1 for everything else.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errPatternTooLong):
		return 2
	case errors.Is(err, errBadTarget):
		return 3
	}
	return 1
}

// Global flags
var (
	configPath string
	threads    int
	nameFile   string
	nameDB     string
	resultsDir string
	logLevel   string
	verbose    bool
)

func init() {
	// Configuration flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "eaid.yaml", "Configuration file path")

	// Search flags
	rootCmd.PersistentFlags().IntVarP(&threads, "threads", "t", 0, "Worker count (0=all CPUs)")

	// Lookup flags
	rootCmd.PersistentFlags().StringVar(&nameFile, "name-file", "names.csv", "CSV name table: hex checksum,\"label\" per line")
	rootCmd.PersistentFlags().StringVar(&nameDB, "name-db", "", "SQLite name database (wins over CSV on duplicates)")

	// Output flags
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results-dir", "", "Directory for hit/stats files (empty=console only)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")

	// Bind flags to viper
	viper.BindPFlag("search.threads", rootCmd.PersistentFlags().Lookup("threads"))
	viper.BindPFlag("lookup.name_file", rootCmd.PersistentFlags().Lookup("name-file"))
	viper.BindPFlag("lookup.name_db", rootCmd.PersistentFlags().Lookup("name-db"))
	viper.BindPFlag("output.results_dir", rootCmd.PersistentFlags().Lookup("results-dir"))
	viper.BindPFlag("output.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Environment variables
	viper.SetEnvPrefix("EAID")
	viper.AutomaticEnv()
}

func loadConfig() (*Config, error) {
	// Try to load from file
	cfg, err := loadConfigFromFile(configPath)
	if err != nil {
		// If no config file, create default
		if os.IsNotExist(err) {
			fmt.Printf("Config file not found, using defaults: %s\n", configPath)
			cfg = createDefaultConfig()

			// Save default config
			if err := saveDefaultConfig(configPath, cfg); err != nil {
				fmt.Printf("Warning: Could not save default config: %v\n", err)
			}
		} else {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	return cfg, nil
}

// ==================== MAIN ENTRY POINT ====================
func main() {
	// Set resource limits
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
