package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/graph"
	"github.com/cairnlog/cairn/internal/interchange"
	"github.com/cairnlog/cairn/internal/ui"
)

var (
	importRenumber  bool
	importOverwrite bool
	importDryRun    bool
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import records from an interchange document",
	Long: `Reads a JSON interchange document (bulk, single-record, or bare
record shape) and writes its records into the repository in the
configured encoding. "-" reads from stdin.

--renumber assigns fresh numbers after the repository's highest and
rewrites links inside the imported set. Without it, numbers are kept,
and a number that already exists aborts the whole import unless
--overwrite is set. --dry-run reports the full plan and writes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		var data []byte
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		result, err := interchange.Import(r, data, interchange.ImportOptions{
			Renumber:  importRenumber,
			Overwrite: importOverwrite,
			DryRun:    importDryRun,
		})
		if err != nil {
			var cerr *graph.CollisionError
			if errors.As(err, &cerr) {
				return handleErrorWithDetails(ErrCollision, err, "re-run with --renumber or --overwrite", cerr.Numbers)
			}
			return handleError(ErrFormatInvalid, err, "")
		}

		if jsonOutput {
			var warnings []string
			for _, w := range result.Warnings {
				warnings = append(warnings, w.String())
			}
			outputSuccessWithWarnings(result, warnings, &Meta{Count: result.Records})
			return nil
		}

		for _, m := range result.Mappings {
			fmt.Printf("  %d -> %d\n", m.Old, m.New)
		}
		for _, w := range result.Warnings {
			fmt.Println(ui.Warning(w.String()))
		}
		if result.DryRun {
			fmt.Println(ui.Infof("dry run: %d records, %d files would be written", result.Records, len(result.Files)))
			return nil
		}
		fmt.Println(ui.Successf("imported %d records", result.Records))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importRenumber, "renumber", false, "Assign fresh numbers and rewrite in-set links")
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace existing records on number collision")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report the plan without writing")
	rootCmd.AddCommand(importCmd)
}
