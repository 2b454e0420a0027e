// Package catalog holds the request schemas of every mutating API endpoint.
package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/masomo/core/validation"
)

// Schema names
const (
	UserRegister     = "user.register"
	UserLogin        = "user.login"
	UserUpdate       = "user.update"
	SchoolCreate     = "school.create"
	ClassCreate      = "class.create"
	QuizCreate       = "quiz.create"
	LessonPlanCreate = "lessonPlan.create"
)

//go:embed schemas.yaml
var defaultSchemas []byte

// Catalog is a read-only registry of compiled schemas, keyed by name.
type Catalog struct {
	schemas     map[string]*validation.Schema
	definitions map[string]validation.Definition
	names       []string
}

// New compiles the built-in schema catalog.
func New() (*Catalog, error) {
	return Load(bytes.NewReader(defaultSchemas))
}

// Open compiles the YAML catalog at path, or the built-in one if path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return New()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening schema catalog")
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load compiles a YAML list of schema definitions.
func Load(r io.Reader) (*Catalog, error) {
	var defs []validation.Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding schema catalog")
	}
	return FromDefinitions(defs...)
}

// FromDefinitions compiles defs into a Catalog. Schema names must be unique.
func FromDefinitions(defs ...validation.Definition) (*Catalog, error) {
	cat := &Catalog{
		schemas:     make(map[string]*validation.Schema, len(defs)),
		definitions: make(map[string]validation.Definition, len(defs)),
		names:       make([]string, 0, len(defs)),
	}
	for _, def := range defs {
		if _, ok := cat.schemas[def.Name]; ok {
			return nil, &validation.SchemaDefinitionError{Schema: def.Name, Reason: "duplicate schema"}
		}
		schema, err := validation.Compile(def)
		if err != nil {
			return nil, errors.Wrap(err, "compiling schema catalog")
		}
		cat.schemas[def.Name] = schema
		cat.definitions[def.Name] = def
		cat.names = append(cat.names, def.Name)
	}
	sort.Strings(cat.names)
	return cat, nil
}

// Get returns the schema registered under name.
func (c *Catalog) Get(name string) (*validation.Schema, bool) {
	schema, ok := c.schemas[name]
	return schema, ok
}

// MustGet is like Get but panics if name is unknown. Meant for route registration.
func (c *Catalog) MustGet(name string) *validation.Schema {
	schema, ok := c.schemas[name]
	if !ok {
		panic("catalog: unknown schema " + name)
	}
	return schema
}

// Definition returns the declarative form of the schema registered under name.
// The returned value must not be modified.
func (c *Catalog) Definition(name string) (validation.Definition, bool) {
	def, ok := c.definitions[name]
	return def, ok
}

// Names returns the sorted schema names.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}
