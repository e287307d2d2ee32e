package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iksnae/cursor-threads/internal"
)

var (
	verbose     bool
	storagePath string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cursor-threads",
	Short: "Browse and export Cursor IDE conversation threads",
	Long: `A read-only browser for Cursor IDE chat history.

cursor-threads reconstructs ordered, project-attributed conversation
threads from Cursor's local storage (per-workspace stores plus the shared
global store) and lets you browse and export them.

Quick Start:
  cursor-threads projects                # List projects with conversation counts
  cursor-threads list                    # List all conversations
  cursor-threads show <conversation-id>  # View one conversation
  cursor-threads export --format md      # Export conversations as Markdown
  cursor-threads serve                   # Serve the JSON API locally`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newEngine builds an engine from the --storage flag, the environment, or
// per-OS detection, in that order.
func newEngine() (*internal.Engine, error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	override := storagePath
	if override == "" {
		override = cfg.StoragePath
	}

	paths, err := internal.GetStoragePaths(override)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage paths: %w", err)
	}

	return internal.NewEngine(paths), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom storage location (path to the Cursor User directory)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
