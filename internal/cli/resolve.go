package cli

import (
	"fmt"
	"strings"

	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/repo"
	"github.com/cairnlog/cairn/internal/resolver"
)

// resolveRecord resolves a user-supplied reference against the loaded
// repository, turning ambiguity into an actionable error.
func resolveRecord(r *repo.Repository, ref string) (*model.Record, error) {
	res := resolver.New(r.Records()).Resolve(ref)
	if res.Ambiguous {
		var titles []string
		for _, m := range res.Matches {
			titles = append(titles, m.FullTitle())
		}
		return nil, fmt.Errorf("%s; candidates: %s", res.Error, strings.Join(titles, ", "))
	}
	if res.Record == nil {
		return nil, fmt.Errorf("%s", res.Error)
	}
	return res.Record, nil
}
