package repo

import (
	"context"
	"strings"
	"testing"

	"github.com/cairnlog/cairn/internal/model"
	"github.com/cairnlog/cairn/internal/testutil"
)

func TestLoadSortsByNumber(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(3, "Use Postgres", "Accepted").
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(2, "Use Go", "Proposed").
		Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	records := r.Records()
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, want := range []int{1, 2, 3} {
		if records[i].Number != want {
			t.Errorf("records[%d].Number = %d, want %d", i, records[i].Number, want)
		}
	}
	if records[2].Title != "Use Postgres" {
		t.Errorf("Title = %q", records[2].Title)
	}
}

func TestLoadCollectsProblems(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithFile("0002-broken.md", "---\nnumber: [not yaml\n").
		Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("a broken file must not abort the scan: %v", err)
	}
	if len(r.Records()) != 1 {
		t.Errorf("got %d records, want 1", len(r.Records()))
	}
	if len(r.Problems()) != 1 {
		t.Fatalf("problems = %v, want exactly one", r.Problems())
	}
	if !strings.Contains(r.Problems()[0].Path, "0002-broken.md") {
		t.Errorf("problem path = %q", r.Problems()[0].Path)
	}
}

func TestLoadDetectsDuplicates(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "First Take", "Accepted").
		WithFile("0001-second-take.md", "# 1. Second Take\n\n## Status\n\nProposed\n").
		Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dups := r.Duplicates()
	if len(dups[1]) != 2 {
		t.Fatalf("duplicates[1] = %v, want two paths", dups[1])
	}
	if len(r.Records()) != 2 {
		t.Errorf("both files stay visible, got %d records", len(r.Records()))
	}
	if got := r.Get(1); got == nil || got.Title != "First Take" {
		t.Errorf("Get(1) = %+v, want the first file to own the number", got)
	}
}

func TestLoadRecordsStrays(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithFile("README.md", "# About these records\n").
		Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.Strays()) != 1 || !strings.HasSuffix(r.Strays()[0], "README.md") {
		t.Errorf("Strays = %v", r.Strays())
	}
	if len(r.Records()) != 1 {
		t.Errorf("strays must not be parsed as records")
	}
}

func TestNextNumberSkipsGaps(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(5, "Use Go", "Accepted").
		Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := r.NextNumber(); got != 6 {
		t.Errorf("NextNumber = %d, want 6 (gaps are never reused)", got)
	}
}

func TestCreateWritesRecord(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rec, err := r.Create("Use Postgres")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Number != 2 {
		t.Errorf("Number = %d, want 2", rec.Number)
	}
	if !rec.Status.Equal(model.StatusProposed) {
		t.Errorf("Status = %q, want proposed", rec.Status)
	}
	if _, ok := rec.Section("Context"); !ok {
		t.Error("template Context section missing")
	}
	if !tr.RecordExists("0002-use-postgres.md") {
		t.Error("record file not written")
	}
	if got := r.Get(2); got != rec {
		t.Error("created record not indexed")
	}
	if got := r.NextNumber(); got != 3 {
		t.Errorf("NextNumber = %d, want 3", got)
	}
}

func TestCreateConcurrentNumbers(t *testing.T) {
	tr := testutil.NewTestRepo(t).Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	const n = 8
	done := make(chan int, n)
	for i := 0; i < n; i++ {
		go func() {
			rec, err := r.Create("Parallel Decision")
			if err != nil {
				done <- 0
				return
			}
			done <- rec.Number
		}()
	}

	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		num := <-done
		if num == 0 {
			t.Fatal("create failed")
		}
		if seen[num] {
			t.Fatalf("number %d allocated twice", num)
		}
		seen[num] = true
	}
}

func TestSaveRewritesInConfiguredEncoding(t *testing.T) {
	tr := testutil.NewTestRepo(t).Extended().
		WithFile("0001-record-decisions.md", "# 1. Record Decisions\n\n## Status\n\nAccepted\n\n## Context\n\nWhy.\n").
		Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rec := r.Get(1)
	rec.Status = model.StatusDeprecated
	if err := r.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	content := tr.ReadRecord("0001-record-decisions.md")
	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("updates must use the configured encoding, got:\n%s", content)
	}
	if !strings.Contains(content, "status: deprecated") {
		t.Errorf("status not persisted:\n%s", content)
	}
}

func TestCreateConcurrentDuplicateTitles(t *testing.T) {
	tr := testutil.NewTestRepo(t).Build()

	r, err := Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first, err := r.Create("Same Title")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := r.Create("Same Title")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Number == second.Number {
		t.Errorf("both records got %d", first.Number)
	}
	if first.Path == second.Path {
		t.Errorf("records share a path %q", first.Path)
	}
}
