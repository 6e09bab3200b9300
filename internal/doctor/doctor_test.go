package doctor

import (
	"context"
	"strings"
	"testing"

	"github.com/cairnlog/cairn/internal/repo"
	"github.com/cairnlog/cairn/internal/testutil"
)

func runDoctor(t *testing.T, tr *testutil.TestRepo) *Report {
	t.Helper()
	r, err := repo.Load(context.Background(), tr.Settings)
	if err != nil {
		t.Fatalf("load repository: %v", err)
	}
	return Run(r)
}

func findings(r *Report, check string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Check == check {
			out = append(out, f)
		}
	}
	return out
}

func TestHealthyRepository(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(2, "Use Postgres", "Accepted").
		Build()

	report := runDoctor(t, tr)
	if len(report.Findings) != 0 {
		t.Errorf("findings = %+v, want none", report.Findings)
	}
	if report.HasBlocking() {
		t.Error("healthy repository must not block")
	}
}

func TestSupersededWithoutReciprocal(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(2, "Use MySQL", "Superseded").
		WithLegacyRecord(3, "Use Postgres", "Accepted").
		Build()

	report := runDoctor(t, tr)

	warns := findings(report, CheckSupersede)
	if len(warns) != 1 || warns[0].Level != Warn {
		t.Fatalf("supersede findings = %+v, want exactly one WARN", warns)
	}
	if report.HasBlocking() {
		t.Error("a WARN must never block")
	}
}

func TestDanglingLinkIsError(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(2, "Use MySQL", "Superseded").
		WithLegacyRecord(3, "Use Postgres", "Accepted",
			"Relates to [42. Phantom Decision](0042-phantom-decision.md)").
		Build()

	report := runDoctor(t, tr)

	errs := findings(report, CheckLinks)
	if len(errs) != 1 || errs[0].Level != Error {
		t.Fatalf("link findings = %+v, want exactly one ERROR", errs)
	}
	if !strings.Contains(errs[0].Message, "42") {
		t.Errorf("message = %q, want the missing number named", errs[0].Message)
	}
	if !report.HasBlocking() {
		t.Error("an ERROR must block")
	}
}

func TestGapsAreInformational(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(4, "Use Postgres", "Accepted").
		Build()

	report := runDoctor(t, tr)

	gaps := findings(report, CheckGaps)
	if len(gaps) != 2 {
		t.Fatalf("gap findings = %+v, want two (numbers 2 and 3)", gaps)
	}
	for _, g := range gaps {
		if g.Level != OK {
			t.Errorf("gap finding level = %v, want OK", g.Level)
		}
	}
	if report.HasBlocking() {
		t.Error("gaps are legal and must not block")
	}
}

func TestDuplicateNumbersAreErrors(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "First Take", "Accepted").
		WithFile("0001-second-take.md", "# 1. Second Take\n\n## Status\n\nProposed\n").
		Build()

	report := runDoctor(t, tr)

	dups := findings(report, CheckDuplicates)
	if len(dups) != 1 || dups[0].Level != Error {
		t.Fatalf("duplicate findings = %+v, want one ERROR", dups)
	}
}

func TestParseFailureIsError(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithFile("0002-broken.md", "---\nnumber: [oops\n").
		Build()

	report := runDoctor(t, tr)

	if errs := findings(report, CheckParse); len(errs) != 1 || errs[0].Level != Error {
		t.Fatalf("parse findings = %+v, want one ERROR", errs)
	}
}

func TestStrayFilenameWarns(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithFile("decisions-index.md", "# Index\n").
		Build()

	report := runDoctor(t, tr)

	if warns := findings(report, CheckFilenames); len(warns) != 1 || warns[0].Level != Warn {
		t.Fatalf("filename findings = %+v, want one WARN", warns)
	}
}

func TestNumberMismatchWarns(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithFile("0005-use-queues.md", "# 2. Use Queues\n\n## Status\n\nAccepted\n").
		Build()

	report := runDoctor(t, tr)

	warns := findings(report, CheckFilenames)
	if len(warns) != 1 || warns[0].Level != Warn {
		t.Fatalf("filename findings = %+v, want one WARN", warns)
	}
}

func TestCounts(t *testing.T) {
	tr := testutil.NewTestRepo(t).
		WithLegacyRecord(1, "Record Decisions", "Accepted").
		WithLegacyRecord(3, "Use MySQL", "Superseded").
		Build()

	report := runDoctor(t, tr)
	ok, warn, errs := report.Counts()
	if ok != 1 || warn != 1 || errs != 0 {
		t.Errorf("Counts = (%d, %d, %d), want (1, 1, 0)", ok, warn, errs)
	}
}
