package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/interchange"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/ui"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		records := r.Records()
		if listStatus != "" {
			want := model.ParseStatus(listStatus)
			filtered := records[:0]
			for _, rec := range records {
				if rec.Status.Equal(want) {
					filtered = append(filtered, rec)
				}
			}
			records = filtered
		}

		if jsonOutput {
			data := make([]interchange.Record, 0, len(records))
			for _, rec := range records {
				data = append(data, interchange.EncodeRecord(rec))
			}
			outputSuccess(data, &Meta{Count: len(data)})
			return nil
		}

		table := ui.NewTable(4)
		dc := ui.NewDisplayContext()
		// Leave room for the number, status, and date columns.
		titleWidth := dc.AvailableWidth(34)
		for _, rec := range records {
			date := ""
			if !rec.Date.IsZero() {
				date = rec.Date.Format(model.DateLayout)
			}
			number := strconv.Itoa(rec.Number)
			title := rec.Title
			if ui.IsTTY() {
				title = ui.Truncate(title, titleWidth)
				number = ui.AccentBold.Render(number)
				if rec.Status.Equal(model.StatusSuperseded) {
					title = ui.Strike.Render(title)
				}
			}
			table.AddRow(number, title, rec.Status.Display(), ui.Hint(date))
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only records with this status")
	rootCmd.AddCommand(listCmd)
}
