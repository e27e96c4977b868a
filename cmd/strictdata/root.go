package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yannn/strictdata"
	"github.com/yannn/strictdata/internal/config"
	"golang.org/x/term"
)

const defaultConfig = "strictdata.yaml"

var rootCmd = &cobra.Command{
	Use:   "strictdata",
	Short: "Strictdata validates records against annotation-declared class schemas",
	Long: `Strictdata reads class schemas written as @property, @enum and @options annotations,
then inspects them or checks records against them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", defaultConfig, "Configuration file")
	rootCmd.PersistentFlags().StringSlice("schema", nil, "Additional schema file (YAML or JSON), repeatable")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")
}

// loadConfig reads the configuration named by the flags. A missing default
// file yields the built-in defaults; a missing explicit file is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		if !cmd.Flags().Changed("config") && errors.Is(err, fs.ErrNotExist) {
			cfg = config.Default()
		} else {
			return nil, err
		}
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	schemas, _ := cmd.Flags().GetStringSlice("schema")
	for _, s := range schemas {
		abs, err := filepath.Abs(s)
		if err != nil {
			return nil, fmt.Errorf("invalid schema path: %w", err)
		}
		cfg.SchemaFiles = append(cfg.SchemaFiles, abs)
	}
	return cfg, cfg.Validate()
}

// newEngine builds an engine from cfg, logging to stderr.
func newEngine(cfg *config.Config, opts ...strictdata.Option) (*strictdata.Engine, error) {
	src, err := cfg.Source()
	if err != nil {
		return nil, err
	}
	base := []strictdata.Option{
		strictdata.WithLogger(cfg.Logger(os.Stderr)),
		strictdata.WithSource(src),
		strictdata.WithProviders(cfg.Providers()),
	}
	if cfg.EagerEnums {
		base = append(base, strictdata.WithEagerEnums())
	}
	return strictdata.New(append(base, opts...)...), nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
