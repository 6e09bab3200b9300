package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cairnlog/cairn/internal/model"
)

func TestResolveTOML(t *testing.T) {
	root := t.TempDir()
	content := "dir = \"decisions\"\nencoding = \"extended\"\n"
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if settings.Root != root {
		t.Errorf("Root = %q, want %q", settings.Root, root)
	}
	if want := filepath.Join(root, "decisions"); settings.Dir != want {
		t.Errorf("Dir = %q, want %q", settings.Dir, want)
	}
	if settings.Encoding != model.EncodingExtended {
		t.Errorf("Encoding = %v, want extended", settings.Encoding)
	}
}

func TestResolveWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "api")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, CompatFileName), []byte("doc/adr\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Resolve(nested)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if settings.Root != root {
		t.Errorf("Root = %q, want %q", settings.Root, root)
	}
	if settings.Encoding != model.EncodingLegacy {
		t.Errorf("compat marker must select legacy encoding, got %v", settings.Encoding)
	}
}

func TestResolveTOMLWins(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, CompatFileName), []byte("elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("dir = \"decisions\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(root, "decisions"); settings.Dir != want {
		t.Errorf("Dir = %q, want cairn.toml to take precedence", settings.Dir)
	}
}

func TestResolveNotFound(t *testing.T) {
	_, err := Resolve(t.TempDir())
	if err == nil {
		t.Fatal("expected ErrNotFound")
	}
	if _, ok := err.(*ErrNotFound); !ok {
		t.Errorf("got %T, want *ErrNotFound", err)
	}
}

func TestResolveBadEncoding(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("encoding = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(root); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestInitCompat(t *testing.T) {
	root := t.TempDir()

	settings, err := Init(root, "", false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if want := filepath.Join(root, DefaultDir); settings.Dir != want {
		t.Errorf("Dir = %q, want %q", settings.Dir, want)
	}
	if _, err := os.Stat(settings.Dir); err != nil {
		t.Errorf("records directory not created: %v", err)
	}

	resolved, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve after Init: %v", err)
	}
	if resolved.Dir != settings.Dir || resolved.Encoding != model.EncodingLegacy {
		t.Errorf("resolved %+v, want legacy at %q", resolved, settings.Dir)
	}
}

func TestInitExtended(t *testing.T) {
	root := t.TempDir()

	settings, err := Init(root, "decisions", true)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if settings.Encoding != model.EncodingExtended {
		t.Errorf("Encoding = %v, want extended", settings.Encoding)
	}

	resolved, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve after Init: %v", err)
	}
	if resolved.Encoding != model.EncodingExtended {
		t.Errorf("resolved encoding = %v, want extended", resolved.Encoding)
	}
	if want := filepath.Join(root, "decisions"); resolved.Dir != want {
		t.Errorf("Dir = %q, want %q", resolved.Dir, want)
	}
}
