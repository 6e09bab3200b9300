package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/doctor"
	"github.com/cairnlog/cairn/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Audit the repository for structural problems",
	Long: `Runs every consistency check: filename conventions, duplicate
numbers, numbering gaps, dangling links, supersede reciprocity, and
parse failures. Exits non-zero when any finding is an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		report := doctor.Run(r)
		_, warnings, errors := report.Counts()

		if jsonOutput {
			outputJSON(Response{
				OK:   !report.HasBlocking(),
				Data: report,
				Meta: &Meta{Count: len(report.Findings)},
			})
			if report.HasBlocking() {
				return errSilent
			}
			return nil
		}

		for _, f := range report.Findings {
			switch f.Level {
			case doctor.Error:
				fmt.Println(ui.Error(f.Message))
			case doctor.Warn:
				fmt.Println(ui.Warning(f.Message))
			default:
				fmt.Println(ui.Info(f.Message))
			}
		}

		if len(report.Findings) > 0 {
			fmt.Println()
		}
		switch {
		case report.HasBlocking():
			return fmt.Errorf("repository has problems %s", ui.ErrorWarningCounts(errors, warnings))
		case warnings > 0:
			fmt.Println(ui.Warningf("repository is usable %s", ui.ErrorWarningCounts(0, warnings)))
		default:
			fmt.Println(ui.Successf("%d records, no problems found", len(r.Records())))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
