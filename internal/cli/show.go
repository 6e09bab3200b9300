package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/interchange"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show one record",
	Long:  `Prints a record's parsed form. The reference is a number, a title, or a filename.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		rec, err := resolveRecord(r, args[0])
		if err != nil {
			return handleError(ErrRecordNotFound, err, "")
		}

		if jsonOutput {
			outputSuccess(interchange.EncodeRecord(rec), nil)
			return nil
		}

		fmt.Println(ui.Header(rec.FullTitle()))
		fmt.Printf("Status: %s\n", rec.Status.Display())
		if !rec.Date.IsZero() {
			fmt.Printf("Date: %s\n", rec.Date.Format(model.DateLayout))
		}
		fmt.Println(ui.Hint(rec.Path))

		if len(rec.Links) > 0 {
			fmt.Println()
			fmt.Println(ui.Header("Links"))
			for _, l := range rec.Links {
				line := fmt.Sprintf("%s %d", l.Kind, l.Target)
				if target := r.Get(l.Target); target != nil {
					line = fmt.Sprintf("%s %s", l.Kind, target.FullTitle())
				}
				if l.Description != "" {
					line += " " + ui.Hint("("+l.Description+")")
				}
				fmt.Println("  " + line)
			}
		}

		for _, s := range rec.Sections {
			fmt.Println()
			fmt.Println(ui.Header(s.Name))
			fmt.Println(s.Body)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
