package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/atomicfile"
	"github.com/cairnlog/cairn/internal/interchange"
	"github.com/cairnlog/cairn/internal/ui"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every record as an interchange document",
	Long: `Writes the whole repository as one JSON interchange document to
stdout, or to a file with --output. The document can be re-imported
with "cairn import".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		data, err := interchange.Marshal(interchange.Export(r))
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := atomicfile.WriteFile(exportOutput, data, 0o644); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if !jsonOutput {
			fmt.Println(ui.Successf("exported %d records to %s", len(r.Records()), ui.FilePath(exportOutput)))
		} else {
			outputSuccess(map[string]interface{}{
				"output":  exportOutput,
				"records": len(r.Records()),
			}, nil)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
