package ui

import "testing"

func TestTableAlignment(t *testing.T) {
	table := NewTable(3)
	table.AddRow("1", "Record architecture decisions", "accepted")
	table.AddRow("12", "Use Postgres", "proposed")

	got := table.String()
	want := "1   Record architecture decisions  accepted\n" +
		"12  Use Postgres                   proposed\n"
	if got != want {
		t.Errorf("table output:\n%q\nwant:\n%q", got, want)
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Errorf("empty table = %q", got)
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "error", "errors"); got != "(1 error)" {
		t.Errorf("Count = %q", got)
	}
	if got := Count(3, "error", "errors"); got != "(3 errors)" {
		t.Errorf("Count = %q", got)
	}
}
