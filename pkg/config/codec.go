// Package config persists keyword registries and holds the editor settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fivemoreminix/moledit/pkg/log"
	"github.com/fivemoreminix/moledit/pkg/syntax"
)

// FormatVersion is the version written into every record. Records with a
// higher version are rejected.
const FormatVersion = 1

// DefaultRecordName names records written by Save.
const DefaultRecordName = "mollang"

// Record is the on-disk form of a Registry.
//
//	version: 1
//	name: mollang
//	categories:
//	  - name: variables
//	    patterns: [몰, 모올, '모{오}올']
//	    style: {color: '#00FFFF', bold: true, italic: false}
//
// Unknown keys are ignored.
type Record struct {
	Version    int              `yaml:"version"`
	Name       string           `yaml:"name,omitempty"`
	Categories []CategoryRecord `yaml:"categories"`
}

type CategoryRecord struct {
	Name     string       `yaml:"name"`
	Patterns *[]string    `yaml:"patterns,flow"` // Required; nil when the key is missing
	Style    *StyleRecord `yaml:"style,omitempty,flow"`
}

type StyleRecord struct {
	Color  string `yaml:"color,omitempty"`
	Bold   bool   `yaml:"bold"`
	Italic bool   `yaml:"italic"`
}

// NewRecord captures the categories of reg.
func NewRecord(name string, reg *syntax.Registry) Record {
	rec := Record{Version: FormatVersion, Name: name}
	for c := range reg.All() {
		patterns := c.Patterns
		if patterns == nil {
			patterns = []string{}
		}
		rec.Categories = append(rec.Categories, CategoryRecord{
			Name:     c.Name,
			Patterns: &patterns,
			Style:    &StyleRecord{Color: c.Style.Color, Bold: c.Style.Bold, Italic: c.Style.Italic},
		})
	}
	return rec
}

// Registry validates the record and builds a registry from it. A missing
// name or pattern list, or any category the registry rejects, fails the
// whole record.
func (rec Record) Registry() (*syntax.Registry, error) {
	if rec.Version == 0 {
		return nil, corrupt("missing version")
	}
	if rec.Version > FormatVersion {
		return nil, corrupt("unsupported version %d (newest known is %d)", rec.Version, FormatVersion)
	}

	cats := make([]syntax.Category, 0, len(rec.Categories))
	for i, c := range rec.Categories {
		if c.Name == "" {
			return nil, corrupt("category %d has no name", i)
		}
		if c.Patterns == nil {
			return nil, corrupt("category %q has no patterns", c.Name)
		}
		cat := syntax.Category{Name: c.Name, Patterns: *c.Patterns}
		if c.Style != nil {
			cat.Style = syntax.Style{Color: c.Style.Color, Bold: c.Style.Bold, Italic: c.Style.Italic}
		}
		cats = append(cats, cat)
	}

	reg, err := syntax.NewRegistry(cats...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFormat, err)
	}
	return reg, nil
}

// Encode writes reg as a record named name.
func Encode(w io.Writer, name string, reg *syntax.Registry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewRecord(name, reg)); err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	return enc.Close()
}

// Decode reads a record and builds a registry from it.
func Decode(r io.Reader) (*syntax.Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	return decode(data)
}

func decode(data []byte) (*syntax.Registry, error) {
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFormat, err)
	}
	return rec.Registry()
}

// Save writes reg to path. The record is written to a temporary file next to
// path and renamed over it, so a failed save leaves the previous record intact.
func Save(reg *syntax.Registry, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, DefaultRecordName, reg); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		log.ErrorErr(log.CatConfig, "saving keywords failed", err, "path", path)
		return err
	}
	log.Info(log.CatConfig, "saved keywords", "path", path, "categories", reg.Len())
	return nil
}

// Load reads the record at path. The registry currently in use is never
// touched; callers swap it in only when Load succeeds.
func Load(path string) (*syntax.Registry, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	reg, err := decode(data)
	if err != nil {
		log.ErrorErr(log.CatConfig, "loading keywords failed", err, "path", path)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info(log.CatConfig, "loaded keywords", "path", path, "categories", reg.Len())
	return reg, nil
}

// LoadOrDefault loads the record at path, or returns the built-in registry
// when there is no file yet.
func LoadOrDefault(path string) (*syntax.Registry, error) {
	reg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return syntax.NewDefaultRegistry(), nil
	}
	return reg, err
}

// Backup copies the record at path to path+".backup" and returns the
// backup's path.
func Backup(path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	backup := path + ".backup"
	if err := writeFileAtomic(backup, data); err != nil {
		return "", err
	}
	return backup, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // user-chosen keyword file
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return &IOError{Op: "create", Path: dir, Err: err}
	}
	tempPath := temp.Name()
	defer func() {
		if err != nil {
			_ = temp.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := temp.Write(data); err != nil {
		return &IOError{Op: "write", Path: tempPath, Err: err}
	}
	if err := temp.Close(); err != nil {
		return &IOError{Op: "close", Path: tempPath, Err: err}
	}
	if err := os.Rename(tempPath, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
