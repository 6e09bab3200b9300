package parser

import (
	"errors"
	"testing"

	"github.com/cairnlog/cairn/internal/model"
)

const extendedRecord = `---
number: 2
title: Use PostgreSQL
status: accepted
date: 2024-01-15
links:
  - target: 1
    kind: supersedes
---

## Context

We need a database.

## Decision

We will use PostgreSQL.

## Consequences

We get ACID compliance.
`

func TestParseExtended(t *testing.T) {
	rec, err := Parse(extendedRecord)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.Number != 2 {
		t.Errorf("Number = %d", rec.Number)
	}
	if rec.Title != "Use PostgreSQL" {
		t.Errorf("Title = %q", rec.Title)
	}
	if !rec.Status.Equal(model.StatusAccepted) {
		t.Errorf("Status = %q", rec.Status)
	}
	if rec.Encoding != model.EncodingExtended {
		t.Errorf("Encoding = %v", rec.Encoding)
	}
	if len(rec.Links) != 1 || rec.Links[0].Target != 1 || !rec.Links[0].Kind.Equal(model.KindSupersedes) {
		t.Errorf("links = %+v", rec.Links)
	}
	if len(rec.Sections) != 3 {
		t.Errorf("sections = %+v", rec.Sections)
	}
}

func TestParseExtendedMetadata(t *testing.T) {
	content := `---
number: 1
title: Use MADR Format
status: accepted
date: 2024-09-15
deciders:
  - Alice
  - Bob
consulted:
  - Carol
informed:
  - Dave
tags:
  - format
---

## Context and Problem Statement

We need a standard format.
`
	rec, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(rec.Deciders) != 2 || rec.Deciders[0] != "Alice" {
		t.Errorf("Deciders = %v", rec.Deciders)
	}
	if len(rec.Consulted) != 1 || rec.Consulted[0] != "Carol" {
		t.Errorf("Consulted = %v", rec.Consulted)
	}
	if len(rec.Informed) != 1 || rec.Informed[0] != "Dave" {
		t.Errorf("Informed = %v", rec.Informed)
	}
	if len(rec.Tags) != 1 || rec.Tags[0] != "format" {
		t.Errorf("Tags = %v", rec.Tags)
	}
}

func TestParseExtendedDecisionMakersAlias(t *testing.T) {
	content := `---
number: 1
title: MADR Spelling
status: proposed
date: 2024-01-01
decision-makers:
  - Alice
---

## Context

Context.
`
	rec, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rec.Deciders) != 1 || rec.Deciders[0] != "Alice" {
		t.Errorf("Deciders = %v", rec.Deciders)
	}
}

func TestParseExtendedAbsentMetadataIsNil(t *testing.T) {
	content := `---
number: 3
title: No Metadata
status: accepted
date: 2024-09-15
---

## Context

Context.
`
	rec, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Absent fields are "not set", never empty values.
	if rec.Deciders != nil || rec.Consulted != nil || rec.Informed != nil || rec.Tags != nil {
		t.Errorf("absent metadata should be nil: %+v", rec)
	}
}

func TestParseExtendedLinkDescription(t *testing.T) {
	content := `---
number: 4
title: Linked
status: accepted
date: 2024-01-01
links:
  - target: 2
    kind: relates-to
    description: shares the storage layer
---

## Context

Context.
`
	rec, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Links[0].Description != "shares the storage layer" {
		t.Errorf("Description = %q", rec.Links[0].Description)
	}
}

func TestParseExtendedInvalidYAML(t *testing.T) {
	content := "---\nnot valid yaml {{{{\n---\n\n## Context\n\nContext.\n"
	_, err := Parse(content)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected *ParseError, got %T", err)
	}
}

func TestParseExtendedUnclosed(t *testing.T) {
	content := "---\nnumber: 1\ntitle: Test\n"
	if _, err := Parse(content); err == nil {
		t.Fatal("expected error for unclosed front-matter")
	}
}
