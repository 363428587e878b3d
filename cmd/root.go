package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/logging"
	"github.com/abhisek/speakflow/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "speakflow",
	Short: "Mandarin speaking practice in the terminal",
	Long:  "SpeakFlow: guided Mandarin lessons with pronunciation feedback and AI role-play.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides SPEAKFLOW_DB env var)")
	flags.String("content", "", "Path to a YAML unit catalog (defaults to the built-in units)")
	flags.String("log-file", "", "Path to the log file (overrides SPEAKFLOW_LOG_FILE env var)")
	flags.String("env-file", ".env", "Dotenv file to load before reading configuration")

	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadEnvFile reads the dotenv file. Variables already set in the
// environment win. A missing default file is not an error.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SPEAKFLOW_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openLogger writes next to the database unless --log-file or
// SPEAKFLOW_LOG_FILE say otherwise.
func openLogger(cmd *cobra.Command) (*logging.Logger, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg := logging.ConfigFromEnv(filepath.Dir(dbPath))
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		cfg.Path = p
	}
	return logging.New(cfg)
}

func loadCatalog(cmd *cobra.Command) (*content.Catalog, error) {
	path, _ := cmd.Flags().GetString("content")
	if path == "" {
		return content.Default(), nil
	}
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return c, nil
}
