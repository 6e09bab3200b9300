package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/graph"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/ui"
)

var linkCmd = &cobra.Command{
	Use:   "link <source> <kind> <target> [reverse]",
	Short: "Link two records bidirectionally",
	Long: `Adds a link of the given kind from source to target, plus the
reverse link on the target. When the reverse kind is omitted it is
derived: Supersedes pairs with Superseded by, Amends with Amended by,
Relates to with itself; unknown kinds reverse to themselves.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		source, err := resolveRecord(r, args[0])
		if err != nil {
			return handleError(ErrRecordNotFound, err, "")
		}
		target, err := resolveRecord(r, args[2])
		if err != nil {
			return handleError(ErrRecordNotFound, err, "")
		}

		kind := model.ParseLinkKind(args[1])
		var reverse model.LinkKind
		if len(args) == 4 {
			reverse = model.LinkKind(args[3])
		}

		if err := graph.New(r).CreateLink(source.Number, kind, target.Number, reverse); err != nil {
			return handleError(ErrLinkInvalid, err, "")
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{
				"source": source.Number,
				"kind":   string(kind),
				"target": target.Number,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("%d %s %d", source.Number, kind, target.Number))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}
