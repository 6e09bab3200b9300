package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/interchange"
	"github.com/cairnlog/cairn/internal/resolver"
	"github.com/cairnlog/cairn/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Find records by approximate title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		term := strings.Join(args, " ")
		matches := resolver.New(r.Records()).Search(term)

		if jsonOutput {
			data := make([]interchange.Record, 0, len(matches))
			for _, m := range matches {
				data = append(data, interchange.EncodeRecord(m.Record))
			}
			outputSuccess(data, &Meta{Count: len(data)})
			return nil
		}

		if len(matches) == 0 {
			fmt.Println(ui.Hint("no matches"))
			return nil
		}
		table := ui.NewTable(3)
		for _, m := range matches {
			table.AddRow(strconv.Itoa(m.Record.Number), m.Record.Title, m.Record.Status.Display())
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
