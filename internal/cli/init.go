package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/config"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/repo"
	"github.com/cairnlog/cairn/internal/ui"
)

var initExtended bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a records repository",
	Long: `Creates the records directory, the configuration marker, and the
first record ("Record architecture decisions"). The optional argument
sets the records directory relative to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if existing, err := config.Resolve(cwd); err == nil {
			return handleError(ErrRepoExists,
				fmt.Errorf("repository already initialized at %s", existing.Source), "")
		}

		s, err := config.Init(cwd, dir, initExtended)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		r, err := repo.Load(cmd.Context(), s)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		rec, err := r.Create("Record architecture decisions")
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		rec.Status = model.StatusAccepted
		rec.SetSection("Context", "We need to record the architectural decisions made on this project.")
		rec.SetSection("Decision", "We will use Architecture Decision Records, as described by Michael Nygard.")
		rec.SetSection("Consequences", "See Michael Nygard's article, linked above. For a lightweight ADR toolset, see Nat Pryce's adr-tools.")
		if err := r.Save(rec); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if jsonOutput {
			outputSuccess(map[string]string{
				"root":   s.Root,
				"dir":    s.Dir,
				"config": s.Source,
				"first":  rec.Path,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("initialized records repository in %s", ui.FilePath(s.Dir)))
		fmt.Println(ui.Hint("created " + rec.Filename()))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initExtended, "extended", false, "Write cairn.toml and use the front-matter encoding")
	rootCmd.AddCommand(initCmd)
}
