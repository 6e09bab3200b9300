package interchange

import (
	"context"
	"errors"
	"testing"

	"github.com/cairnlog/cairn/internal/graph"
	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/repo"
	"github.com/cairnlog/cairn/internal/testutil"
)

func loadRepo(t *testing.T, tr *testutil.TestRepo) *repo.Repository {
	t.Helper()
	r, err := repo.Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("load repository: %v", err)
	}
	return r
}

func bulkDocument(t *testing.T) []byte {
	t.Helper()
	one := model.New(1, "Adopt Monorepo")
	two := model.New(2, "Split The Monorepo")
	two.AddLink(model.Link{Kind: model.KindSupersedes, Target: 1})

	data, err := Marshal(Encode([]*model.Record{one, two}, nil))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestImportRenumber(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(2, "Use Postgres", "Accepted").
		Build()
	r := loadRepo(t, tr)

	result, err := Import(r, bulkDocument(t), ImportOptions{Renumber: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Records != 2 || len(result.Files) != 2 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Mappings) != 2 || result.Mappings[0] != (graph.Mapping{Old: 1, New: 3}) {
		t.Errorf("Mappings = %+v", result.Mappings)
	}

	reloaded := loadRepo(t, tr)
	four := reloaded.Get(4)
	if four == nil || !four.HasLink(model.KindSupersedes, 3) {
		t.Errorf("renumbered link not rewritten: %+v", four)
	}
}

func TestImportCollisionAborts(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		Build()
	r := loadRepo(t, tr)

	_, err := Import(r, bulkDocument(t), ImportOptions{})
	var cerr *graph.CollisionError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want *graph.CollisionError", err)
	}
	if len(cerr.Numbers) != 1 || cerr.Numbers[0] != 1 {
		t.Errorf("Numbers = %v", cerr.Numbers)
	}

	reloaded := loadRepo(t, tr)
	if reloaded.Get(2) != nil {
		t.Error("aborted import must write nothing")
	}
}

func TestImportOverwrite(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		Build()
	r := loadRepo(t, tr)

	result, err := Import(r, bulkDocument(t), ImportOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(result.Files) != 2 {
		t.Errorf("Files = %v", result.Files)
	}

	reloaded := loadRepo(t, tr)
	if got := reloaded.Get(1); got == nil || got.Title != "Adopt Monorepo" {
		t.Errorf("Get(1) = %+v, want the imported record", got)
	}
	if tr.RecordExists("0001-record-decisions.md") {
		t.Error("overwritten record's old file must be removed")
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		Build()
	r := loadRepo(t, tr)

	result, err := Import(r, bulkDocument(t), ImportOptions{Renumber: true, DryRun: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !result.DryRun || len(result.Mappings) != 2 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Files) != 2 {
		t.Errorf("dry run must report planned files, got %v", result.Files)
	}

	reloaded := loadRepo(t, tr)
	if len(reloaded.Records()) != 1 {
		t.Error("dry run wrote records")
	}
}

func TestImportWritesConfiguredEncoding(t *testing.T) {
	tr := testutil.NewTestRepo(t).Extended().Build()
	r := loadRepo(t, tr)

	if _, err := Import(r, bulkDocument(t), ImportOptions{}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	content := tr.ReadRecord("0001-adopt-monorepo.md")
	if content[:4] != "---\n" {
		t.Errorf("imported record not in extended form:\n%s", content)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(2, "Use Postgres", "Accepted", "Supersedes [1. Record Decisions](0001-record-decisions.md)").
		Build()
	r := loadRepo(t, tr)

	data, err := Marshal(Export(r))
	if err != nil {
		t.Fatal(err)
	}

	dest := testutil.NewTestRepo(t).Build()
	dr := loadRepo(t, dest)
	if _, err := Import(dr, data, ImportOptions{}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	reloaded := loadRepo(t, dest)
	if len(reloaded.Records()) != 2 {
		t.Fatalf("got %d records", len(reloaded.Records()))
	}
	if !reloaded.Get(2).HasLink(model.KindSupersedes, 1) {
		t.Errorf("links lost in round trip: %+v", reloaded.Get(2).Links)
	}
}
