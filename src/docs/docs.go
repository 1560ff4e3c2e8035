// Package docs is the static registry of builtin documentation. Only the
// signatures of builtin variables are tracked, they seed the type table with
// names like close or bar_index that a script can use without declaring them.
package docs

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// KindVariables is the documentation kind for builtin variables.
const KindVariables = "variables"

type (
	// Variable is a named value together with its type string.
	Variable struct {
		Name string `yaml:"name" json:"name"`
		Type string `yaml:"type" json:"type"`
		Desc string `yaml:"desc,omitempty" json:"desc,omitempty"`
	}
	// Registry holds documentation entries by kind.
	Registry struct {
		entries map[string][]Variable
	}
	document struct {
		Variables []Variable `yaml:"variables"`
	}
)

//go:embed variables.yaml
var builtinVariables []byte

// Builtin returns a registry loaded with the embedded builtin documentation.
func Builtin() (*Registry, error) {
	reg := &Registry{entries: map[string][]Variable{}}
	if err := reg.decode(builtinVariables, false); err != nil {
		return nil, fmt.Errorf("builtin docs: %w", err)
	}
	return reg, nil
}

// Load adds the documentation in rdr. Loaded entries are listed before the
// ones already present so they win when names collide.
func (reg *Registry) Load(rdr io.Reader) error {
	data, err := io.ReadAll(rdr)
	if err != nil {
		return err
	}
	return reg.decode(data, true)
}

// LoadFile adds the documentation stored in a yaml file.
func (reg *Registry) LoadFile(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()
	if err := reg.Load(src); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Docs returns the entries of the given kind. An unknown kind has no entries.
func (reg *Registry) Docs(kind string) []Variable {
	if reg == nil {
		return nil
	}
	return reg.entries[kind]
}

func (reg *Registry) decode(data []byte, prepend bool) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if prepend {
		reg.entries[KindVariables] = append(doc.Variables, reg.entries[KindVariables]...)
	} else {
		reg.entries[KindVariables] = append(reg.entries[KindVariables], doc.Variables...)
	}
	return nil
}
