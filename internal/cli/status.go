package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/graph"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/ui"
)

var statusBy string

var statusCmd = &cobra.Command{
	Use:   "status <ref> <status>",
	Short: "Change a record's status",
	Long: `Sets a record's status. Moving to superseded requires --by naming
the superseding record; the supersede link pair is created alongside
the status change.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		rec, err := resolveRecord(r, args[0])
		if err != nil {
			return handleError(ErrRecordNotFound, err, "")
		}

		status := model.ParseStatus(args[1])
		by := 0
		if statusBy != "" {
			target, err := resolveRecord(r, statusBy)
			if err != nil {
				return handleError(ErrRecordNotFound, err, "")
			}
			by = target.Number
		}

		if err := graph.New(r).Transition(rec.Number, status, by); err != nil {
			return handleError(ErrStatusInvalid, err, "")
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{
				"number": rec.Number,
				"status": string(rec.Status),
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("%s is now %s", rec.FullTitle(), rec.Status.Display()))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusBy, "by", "", "Superseding record (required for superseded)")
	rootCmd.AddCommand(statusCmd)
}
