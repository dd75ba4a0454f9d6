// Package dataset loads columns of values from external files and turns
// them into vectors.
//
// Responsibilities:
//   - Manifest parsing: funvec.yaml describes where columns live and which
//     type each column should be read as
//   - CSV ingestion: header-addressed columns of text cells
//   - SQLite ingestion: single-column queries against a table
//   - Type inference for columns with no declared type
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funvec/pkg/kinds"
	"github.com/funvibe/funvec/pkg/vec"
)

// Manifest is the parsed funvec.yaml configuration file.
type Manifest struct {
	// Lax widens common-type resolution when columns are combined.
	Lax bool `yaml:"lax,omitempty"`

	// Target forces the combined result to this type instead of the
	// resolved common type. Uses the same syntax as column types,
	// e.g. "double" or "categorical[a,b,c]".
	Target string `yaml:"target,omitempty"`

	// Columns declares types for named columns. A column that is not
	// declared gets its type inferred from the data.
	Columns []ColumnSpec `yaml:"columns,omitempty"`

	// Sources lists the files columns are read from, in combine order.
	Sources []Source `yaml:"sources"`
}

// ColumnSpec declares the type a named column should be read as.
type ColumnSpec struct {
	// Name of the column, matched against CSV headers and SQLite
	// column names.
	Name string `yaml:"name"`

	// Type in descriptor syntax: "integer", "date",
	// "categorical[low,high]", "binned[0,10,20]", ...
	Type string `yaml:"type"`
}

// Source is one file columns are read from.
type Source struct {
	// Path to the file, relative to the manifest directory.
	Path string `yaml:"path"`

	// Format is "csv" or "sqlite". If empty it is inferred from the
	// path extension: .csv is CSV; .db, .sqlite and .sqlite3 are
	// SQLite.
	Format string `yaml:"format,omitempty"`

	// Table to read from when the source is a SQLite database.
	Table string `yaml:"table,omitempty"`

	// Column overrides the requested column name for this source,
	// for files that use a different header for the same data.
	Column string `yaml:"column,omitempty"`
}

// Manifest file names probed by FindManifest, in priority order.
var manifestNames = []string{"funvec.yaml", "funvec.yml"}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses manifest data. The path is only used in error
// messages.
func ParseManifest(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.setDefaults()

	return &m, nil
}

// FindManifest searches for a manifest file starting at dir and walking
// up toward the filesystem root. Returns the path of the first manifest
// found, or "" if there is none.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range manifestNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	if len(m.Sources) == 0 {
		return fmt.Errorf("manifest has no sources")
	}

	if m.Target != "" {
		if _, err := kinds.ParseType(m.Target); err != nil {
			return fmt.Errorf("target: %w", err)
		}
	}

	seen := make(map[string]bool)
	for i, col := range m.Columns {
		if col.Name == "" {
			return fmt.Errorf("columns[%d]: missing name", i)
		}
		if seen[col.Name] {
			return fmt.Errorf("columns[%d]: duplicate column %q", i, col.Name)
		}
		seen[col.Name] = true

		if col.Type == "" {
			return fmt.Errorf("columns[%d]: missing type for column %q", i, col.Name)
		}
		if _, err := kinds.ParseType(col.Type); err != nil {
			return fmt.Errorf("columns[%d]: %w", i, err)
		}
	}

	for i, src := range m.Sources {
		if src.Path == "" {
			return fmt.Errorf("sources[%d]: missing path", i)
		}

		format := src.Format
		if format == "" {
			format = FormatForPath(src.Path)
		}
		switch format {
		case "csv":
			if src.Table != "" {
				return fmt.Errorf("sources[%d]: table is only valid for sqlite sources", i)
			}
		case "sqlite":
			if src.Table == "" {
				return fmt.Errorf("sources[%d]: sqlite source %q needs a table", i, src.Path)
			}
		case "":
			return fmt.Errorf("sources[%d]: cannot infer format of %q, set format: csv or format: sqlite", i, src.Path)
		default:
			return fmt.Errorf("sources[%d]: unknown format %q", i, src.Format)
		}
	}

	return nil
}

func (m *Manifest) setDefaults() {
	for i := range m.Sources {
		if m.Sources[i].Format == "" {
			m.Sources[i].Format = FormatForPath(m.Sources[i].Path)
		}
	}
}

// FormatForPath infers a source format from the file extension. Returns
// "" when the extension is not recognized.
func FormatForPath(path string) string {
	switch filepath.Ext(path) {
	case ".csv":
		return "csv"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return ""
	}
}

// ColumnType returns the declared descriptor for a column, or a zero
// descriptor when the column type should be inferred.
func (m *Manifest) ColumnType(name string) (vec.Descriptor, error) {
	for _, col := range m.Columns {
		if col.Name == name {
			return kinds.ParseType(col.Type)
		}
	}
	return vec.Descriptor{}, nil
}

// TargetType returns the forced combine target, or a zero descriptor
// when the common type should be resolved from the inputs.
func (m *Manifest) TargetType() (vec.Descriptor, error) {
	if m.Target == "" {
		return vec.Descriptor{}, nil
	}
	return kinds.ParseType(m.Target)
}

// ColumnName returns the column name to read from a source, honoring
// the per-source override.
func (s *Source) ColumnName(requested string) string {
	if s.Column != "" {
		return s.Column
	}
	return requested
}
