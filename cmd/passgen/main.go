// Package main provides the CLI entrypoint for passgen.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/store"
)

// localOwner keys the CLI's preferences in the local database.
const localOwner = "local"

var verbose bool

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "passgen",
		Short:         "Generate and assess passwords",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
		RunE: runGenerateCmd,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newAssessCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openStore opens the local database. Failing to open it only disables
// persistence.
func openStore() *store.Store {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		slog.Warn("local database unavailable", "path", path, "error", err)
		return nil
	}
	return st
}

func closeStore(st *store.Store) {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

// resolveDark picks the theme: stored preference, then config file, then
// the terminal background.
func resolveDark(ctx context.Context, st *store.Store, fileCfg config.FileConfig) bool {
	if st != nil {
		dark, found, err := st.LoadTheme(ctx, localOwner)
		if err != nil {
			slog.Warn("loading theme preference failed", "error", err)
		} else if found {
			return dark
		}
	}
	if fileCfg.Theme.Dark != nil {
		return *fileCfg.Theme.Dark
	}
	return lipgloss.HasDarkBackground()
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file and print its path",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logErrf("Wrote %s\n", path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func logErrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func logErrln(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}
