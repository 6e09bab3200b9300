// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/config"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/repo"
	"github.com/cairnlog/cairn/internal/ui"
)

var (
	// Global flags
	dirFlag string // Explicit records directory, bypassing discovery

	// Resolved values
	settings *config.Settings
)

// errSilent marks an error that was already reported (e.g. as a JSON
// envelope); Execute sets the exit code without printing it again.
var errSilent = errors.New("silent")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cairn",
	Short: "Cairn - decision records for your repository",
	Long: `Cairn manages a corpus of architecture decision records: numbered
markdown documents describing one decision each, cross-linked and
auditable. Plain files are the source of truth; cairn keeps their
numbering, links, and statuses consistent.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip repository discovery for commands that don't need one.
		switch cmd.Name() {
		case "init", "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		if dirFlag != "" {
			abs, err := filepath.Abs(dirFlag)
			if err != nil {
				return fmt.Errorf("resolve --dir: %w", err)
			}
			if _, err := os.Stat(abs); err != nil {
				return fmt.Errorf("records directory not found: %s", abs)
			}
			settings = &config.Settings{
				Root:     filepath.Dir(abs),
				Dir:      abs,
				Encoding: model.EncodingLegacy,
			}
			return nil
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		settings, err = config.Resolve(cwd)
		if err != nil {
			return handleError(ErrRepoNotFound, err, "run \"cairn init\" to create a repository here")
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, ui.Errorf("%v", err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Records directory (bypasses cairn.toml/.adr-dir discovery)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// loadRepository loads the index for the resolved settings.
func loadRepository(cmd *cobra.Command) (*repo.Repository, error) {
	return repo.Load(cmd.Context(), settings)
}
