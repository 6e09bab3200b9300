package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cairnlog/cairn/internal/graph"
	"github.com/cairnlog/cairn/internal/interchange"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/ui"
)

var (
	newSupersedes []string
	newLinks      []string
)

var newCmd = &cobra.Command{
	Use:   "new <title>...",
	Short: "Create the next-numbered record",
	Long: `Creates a record with the next available number. The title is the
remaining arguments joined with spaces.

--supersede marks an existing record superseded and links it both ways
to the new one. --link accepts "target:kind" or "target:kind:reverse",
e.g. --link "7:Amends" or --link "7:Amends:Amended by".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cmd)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		title := strings.Join(args, " ")
		rec, err := r.Create(title)
		if err != nil {
			return handleError(ErrRecordInvalid, err, "")
		}

		e := graph.New(r)
		for _, ref := range newSupersedes {
			target, err := resolveRecord(r, ref)
			if err != nil {
				return handleError(ErrRecordNotFound, err, "")
			}
			if err := e.Supersede(target.Number, rec.Number); err != nil {
				return handleError(ErrLinkInvalid, err, "")
			}
		}
		for _, spec := range newLinks {
			kind, target, reverse, err := parseLinkSpec(spec)
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			if err := e.CreateLink(rec.Number, kind, target, reverse); err != nil {
				return handleError(ErrLinkInvalid, err, "")
			}
		}

		if jsonOutput {
			outputSuccess(interchange.EncodeRecord(rec), nil)
			return nil
		}

		fmt.Println(ui.Successf("created %s", rec.FullTitle()))
		fmt.Println(ui.Hint(rec.Path))
		return nil
	},
}

// parseLinkSpec parses "target:kind" or "target:kind:reverse" into the
// arguments of a bidirectional link from the new record.
func parseLinkSpec(spec string) (model.LinkKind, int, model.LinkKind, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return "", 0, "", fmt.Errorf("link %q: want target:kind[:reverse]", spec)
	}
	target, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || target <= 0 {
		return "", 0, "", fmt.Errorf("link %q: %q is not a record number", spec, parts[0])
	}
	kind := model.ParseLinkKind(strings.TrimSpace(parts[1]))
	var reverse model.LinkKind
	if len(parts) == 3 {
		reverse = model.LinkKind(strings.TrimSpace(parts[2]))
	}
	return kind, target, reverse, nil
}

func init() {
	newCmd.Flags().StringArrayVarP(&newSupersedes, "supersede", "s", nil, "Record to supersede (repeatable)")
	newCmd.Flags().StringArrayVarP(&newLinks, "link", "l", nil, "Link as target:kind[:reverse] (repeatable)")
	rootCmd.AddCommand(newCmd)
}
