package interchange

import (
	"sort"

	"github.com/cairnlog/cairn/internal/graph"
	"github.com/cairnlog/cairn/internal/repo"
)

// ImportOptions controls how decoded records land in a repository.
type ImportOptions struct {
	// Renumber assigns fresh numbers starting at the repository's next
	// available one, rewriting links inside the imported set.
	Renumber bool

	// Overwrite allows imported records to replace existing ones with
	// the same number.
	Overwrite bool

	// DryRun computes and reports everything without writing.
	DryRun bool
}

// ImportResult reports what an import did, or would do under a dry run.
type ImportResult struct {
	// Records is how many records the document contained.
	Records int

	// Files are the paths written, or planned under a dry run.
	Files []string

	// Mappings is the old→new numbering when renumbering was requested.
	Mappings []graph.Mapping

	// Warnings flag links pointing outside the imported set.
	Warnings []graph.Warning

	DryRun bool
}

// Import decodes interchange JSON and writes the records into the
// repository in its configured encoding. Collisions without overwrite
// permission abort the whole batch before any write.
func Import(r *repo.Repository, data []byte, opts ImportOptions) (*ImportResult, error) {
	incoming, err := Decode(data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Records: len(incoming), DryRun: opts.DryRun}

	if opts.Renumber {
		e := graph.New(r)
		plan, written, err := e.Renumber(incoming, r.NextNumber(), opts.Overwrite, !opts.DryRun)
		if plan != nil {
			result.Mappings = plan.Mappings
			result.Warnings = plan.Warnings
		}
		if err != nil {
			return result, err
		}
		if opts.DryRun {
			for _, sf := range plan.Staged {
				result.Files = append(result.Files, sf.Name)
			}
		} else {
			result.Files = written
		}
		return result, nil
	}

	var collisions []int
	for _, rec := range incoming {
		if r.Get(rec.Number) != nil {
			collisions = append(collisions, rec.Number)
		}
	}
	sort.Ints(collisions)
	if len(collisions) > 0 && !opts.Overwrite {
		return result, &graph.CollisionError{Numbers: collisions}
	}

	if opts.DryRun {
		for _, rec := range incoming {
			result.Files = append(result.Files, rec.Filename())
		}
		return result, nil
	}

	for _, rec := range incoming {
		staged := rec.Clone()
		staged.Path = ""
		staged.Encoding = r.Settings().Encoding
		if existing := r.Get(staged.Number); existing != nil && existing.Path != "" {
			if err := r.Remove(existing); err != nil {
				return result, err
			}
		}
		if err := r.Save(staged); err != nil {
			return result, err
		}
		result.Files = append(result.Files, staged.Path)
	}
	return result, nil
}

// Export builds the bulk document for every record in the repository.
func Export(r *repo.Repository) *Document {
	return Encode(r.Records(), &RepositoryInfo{Directory: r.Settings().Dir})
}
