package validation

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.yaml
var schemaFS embed.FS

// Messages overrides the default text a rule reports.
type Messages struct {
	Required string `yaml:"required" json:"required,omitempty"`
	Min      string `yaml:"min" json:"min,omitempty"`
	Format   string `yaml:"format" json:"format,omitempty"`
	Range    string `yaml:"range" json:"range,omitempty"`
	Order    string `yaml:"order" json:"order,omitempty"`
	Choice   string `yaml:"choice" json:"choice,omitempty"`
	Future   string `yaml:"future" json:"future,omitempty"`
}

// FieldSpec declares one form field and the rule that guards it.
type FieldSpec struct {
	Name      string   `yaml:"name" json:"name"`
	Label     string   `yaml:"label" json:"label"`
	Kind      Kind     `yaml:"kind" json:"kind"`
	Required  bool     `yaml:"required" json:"required"`
	Min       int      `yaml:"min" json:"min,omitempty"`
	DigitsMin int      `yaml:"digits_min" json:"digitsMin,omitempty"`
	DigitsMax int      `yaml:"digits_max" json:"digitsMax,omitempty"`
	Pattern   string   `yaml:"pattern" json:"pattern,omitempty"`
	NotBefore string   `yaml:"not_before" json:"notBefore,omitempty"`
	RangeMin  *float64 `yaml:"range_min" json:"rangeMin,omitempty"`
	RangeMax  *float64 `yaml:"range_max" json:"rangeMax,omitempty"`
	Options   string   `yaml:"options" json:"options,omitempty"`
	Choices   []string `yaml:"choices" json:"choices,omitempty"`
	Equals    string   `yaml:"equals" json:"equals,omitempty"`
	Sentinel  string   `yaml:"sentinel" json:"sentinel,omitempty"`
	// Group is a rendering hint that lets the SPA lay related optional
	// fields out together. Validation never reads it: each field in a group
	// is optional on its own, and a partly filled group is not an error.
	Group     string   `yaml:"group" json:"group,omitempty"`
	Messages  Messages `yaml:"messages" json:"messages"`
}

func (f *FieldSpec) message(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

func (f *FieldSpec) rangeText() string {
	lo, hi := "", ""
	if f.RangeMin != nil {
		lo = strconv.FormatFloat(*f.RangeMin, 'f', -1, 64)
	}
	if f.RangeMax != nil {
		hi = strconv.FormatFloat(*f.RangeMax, 'f', -1, 64)
	}
	switch {
	case lo != "" && hi != "":
		return fmt.Sprintf("%s must be between %s and %s", f.Label, lo, hi)
	case lo != "":
		return fmt.Sprintf("%s must be at least %s", f.Label, lo)
	default:
		return fmt.Sprintf("%s must be at most %s", f.Label, hi)
	}
}

// Schema is a named, ordered set of fields for one console form.
type Schema struct {
	Name   string      `yaml:"name" json:"name"`
	Title  string      `yaml:"title" json:"title"`
	Fields []FieldSpec `yaml:"fields" json:"fields"`

	index map[string]int
}

// Field returns the FieldSpec named name.
func (s *Schema) Field(name string) (*FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return &s.Fields[i], true
}

// UsesOptions reports whether any field is checked against a
// server-provided option set.
func (s *Schema) UsesOptions() bool {
	for _, f := range s.Fields {
		if f.Options != "" {
			return true
		}
	}
	return false
}

// Values holds raw form input keyed by field name.
type Values map[string]string

// Env supplies the context a rule may need beyond the submitted values.
type Env struct {
	// Options holds server-provided option sets (departments, positions,
	// statuses) keyed by the name a FieldSpec refers to.
	Options map[string][]string
	Now     func() time.Time
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

var registry map[string]*Schema

func init() {
	schemas, err := loadSchemas(schemaFS, "schemas")
	if err != nil {
		panic(err)
	}
	registry = schemas
}

// Lookup returns the embedded schema with the given name.
func Lookup(name string) (*Schema, bool) {
	s, ok := registry[name]
	return s, ok
}

// Must is Lookup for schema names known at compile time.
func Must(name string) *Schema {
	s, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("validation: unknown schema %q", name))
	}
	return s
}

// Names lists every embedded schema, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func loadSchemas(fsys fs.FS, dir string) (map[string]*Schema, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("validation: read schemas: %w", err)
	}
	out := make(map[string]*Schema, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("validation: read %s: %w", entry.Name(), err)
		}
		s, err := ParseSchema(raw)
		if err != nil {
			return nil, fmt.Errorf("validation: %s: %w", entry.Name(), err)
		}
		if _, dup := out[s.Name]; dup {
			return nil, fmt.Errorf("validation: duplicate schema %q", s.Name)
		}
		out[s.Name] = s
	}
	return out, nil
}

// ParseSchema decodes one YAML schema document and checks it is well formed.
func ParseSchema(raw []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if strings.TrimSpace(s.Name) == "" {
		return nil, fmt.Errorf("schema name is required")
	}
	s.index = make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if _, ok := rules[f.Kind]; !ok {
			return nil, fmt.Errorf("field %s: unknown kind %q", f.Name, f.Kind)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("field %s declared twice", f.Name)
		}
		if f.Label == "" {
			s.Fields[i].Label = f.Name
		}
		s.index[f.Name] = i
	}
	for _, f := range s.Fields {
		for _, ref := range []string{f.NotBefore, f.Equals} {
			if ref == "" {
				continue
			}
			if _, ok := s.index[ref]; !ok {
				return nil, fmt.Errorf("field %s refers to unknown field %q", f.Name, ref)
			}
		}
		if f.Kind == KindMatch && f.Equals == "" {
			return nil, fmt.Errorf("field %s: match needs equals", f.Name)
		}
	}
	return &s, nil
}
