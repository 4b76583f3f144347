package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cleared-dev/recon/internal/model"
)

// Parser converts one export dialect into a Table.
type Parser interface {
	Parse(r io.Reader) (model.Table, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&AppParser{})
	r.Register(&AmexParser{})
	r.Register(&INGParser{})
	return r
}

// Load reads the file at path with p and projects the result to columns.
// An empty column list keeps every column.
func Load(path string, p Parser, columns []string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	tbl, err := p.Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return model.Table{}, fmt.Errorf("loading %s export: %w", p.Format(), err)
	}

	tbl, err = tbl.Project(columns)
	if err != nil {
		return model.Table{}, fmt.Errorf("loading %s export %s: %w", p.Format(), path, err)
	}
	return tbl, nil
}
