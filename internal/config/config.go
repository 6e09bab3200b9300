// Package config handles repository discovery and project configuration.
//
// A repository is marked either by a cairn.toml file or by an adr-tools
// compatible .adr-dir file. Discovery walks up from a starting directory,
// so commands work from anywhere inside the project.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cairnlog/cairn/internal/model"
)

const (
	// FileName is the project configuration file at the repository root.
	FileName = "cairn.toml"

	// CompatFileName is the adr-tools marker file. It holds only the
	// records directory path; repositories using it default to the
	// legacy encoding.
	CompatFileName = ".adr-dir"

	// DefaultDir is the records directory used when nothing is configured.
	DefaultDir = "doc/adr"
)

// Config represents the on-disk cairn.toml contents.
type Config struct {
	// Dir is the records directory, relative to the repository root.
	Dir string `toml:"dir"`

	// Encoding selects how records are written: "legacy" or "extended".
	// Reading always accepts both.
	Encoding string `toml:"encoding"`
}

// Settings is the resolved configuration threaded into every command.
type Settings struct {
	// Root is the repository root, the directory holding the marker file.
	Root string

	// Dir is the absolute records directory.
	Dir string

	// Encoding is the mode records are written in.
	Encoding model.Encoding

	// Source is the marker file discovery found, for diagnostics.
	Source string
}

// ErrNotFound is returned when no marker file exists in the starting
// directory or any of its ancestors.
type ErrNotFound struct {
	Start string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("no %s or %s found in %s or any parent directory (run \"cairn init\" first)", FileName, CompatFileName, e.Start)
}

// Resolve discovers the repository containing start and loads its
// configuration. cairn.toml takes precedence over .adr-dir when both
// exist in the same directory.
func Resolve(start string) (*Settings, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory: %w", err)
	}

	for dir := abs; ; dir = filepath.Dir(dir) {
		if path := filepath.Join(dir, FileName); exists(path) {
			return loadTOML(dir, path)
		}
		if path := filepath.Join(dir, CompatFileName); exists(path) {
			return loadCompat(dir, path)
		}
		if dir == filepath.Dir(dir) {
			return nil, &ErrNotFound{Start: abs}
		}
	}
}

// Init writes a fresh configuration at root and creates the records
// directory. With extended set, it writes cairn.toml selecting the
// extended encoding; otherwise it writes the adr-tools compatible
// .adr-dir marker and leaves the encoding legacy.
func Init(root, dir string, extended bool) (*Settings, error) {
	if dir == "" {
		dir = DefaultDir
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	recordsDir := filepath.Join(absRoot, dir)
	if err := os.MkdirAll(recordsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create records directory: %w", err)
	}

	var source string
	if extended {
		source = filepath.Join(absRoot, FileName)
		content := fmt.Sprintf("dir = %q\nencoding = %q\n", filepath.ToSlash(dir), model.EncodingExtended)
		if err := os.WriteFile(source, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", FileName, err)
		}
	} else {
		source = filepath.Join(absRoot, CompatFileName)
		if err := os.WriteFile(source, []byte(filepath.ToSlash(dir)+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", CompatFileName, err)
		}
	}

	encoding := model.EncodingLegacy
	if extended {
		encoding = model.EncodingExtended
	}
	return &Settings{
		Root:     absRoot,
		Dir:      recordsDir,
		Encoding: encoding,
		Source:   source,
	}, nil
}

func loadTOML(root, path string) (*Settings, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	encoding, err := parseEncoding(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	return &Settings{
		Root:     root,
		Dir:      filepath.Join(root, filepath.FromSlash(dir)),
		Encoding: encoding,
		Source:   path,
	}, nil
}

func loadCompat(root, path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	dir := strings.TrimSpace(string(content))
	if dir == "" {
		dir = DefaultDir
	}
	return &Settings{
		Root:     root,
		Dir:      filepath.Join(root, filepath.FromSlash(dir)),
		Encoding: model.EncodingLegacy,
		Source:   path,
	}, nil
}

func parseEncoding(s string) (model.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return model.EncodingLegacy, nil
	case "extended":
		return model.EncodingExtended, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q (want \"legacy\" or \"extended\")", s)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
