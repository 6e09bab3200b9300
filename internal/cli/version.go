package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			outputSuccess(map[string]string{
				"version": buildinfo.DisplayVersion(),
				"commit":  buildinfo.Commit,
				"date":    buildinfo.Date,
			}, nil)
			return
		}
		fmt.Printf("%s %s\n", buildinfo.ToolName, buildinfo.DisplayVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
