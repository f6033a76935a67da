// Package schema provides JSON schema generation for modelkit types.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator produces a JSON schema for a model type.
// Uses [github.com/invopop/jsonschema].
type Generator struct {
	value any
	base  string
	dirs  []string
}

// NewGenerator creates a [Generator] for value. The base is the module
// path used to resolve Go doc comments, and dirs are source directories
// scanned so that doc comments become schema descriptions.
func NewGenerator(value any, base string, dirs ...string) *Generator {
	return &Generator{
		value: value,
		base:  base,
		dirs:  dirs,
	}
}

// Generate reflects the value into an indented JSON schema document.
func (g *Generator) Generate() ([]byte, error) {
	r := &jsonschema.Reflector{}

	for _, dir := range g.dirs {
		err := r.AddGoComments(g.base, dir)
		if err != nil {
			return nil, fmt.Errorf("add go comments from %s: %w", dir, err)
		}
	}

	jss := r.Reflect(g.value)

	jsData, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return jsData, nil
}
