package kry

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/kryonlabs/kryon/pkg/ir"
)

//go:embed components.yml
var componentTableYAML []byte

// componentSpec is one row of the embedded component table.
type componentSpec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Constructor string `yaml:"constructor"`
	Initial     string `yaml:"initial"`
}

type componentTable struct {
	byName map[string]componentSpec // exact block name, fast path
	bySnake map[string]componentSpec // snake_case canonical form
}

var (
	tableOnce sync.Once
	table     *componentTable
	tableErr  error
)

func loadTable() (*componentTable, error) {
	tableOnce.Do(func() {
		var raw struct {
			Components []componentSpec `yaml:"components"`
		}
		if err := yaml.Unmarshal(componentTableYAML, &raw); err != nil {
			tableErr = fmt.Errorf("component table: %w", err)
			return
		}
		t := &componentTable{
			byName:  make(map[string]componentSpec),
			bySnake: make(map[string]componentSpec),
		}
		for _, spec := range raw.Components {
			if spec.Type == "" {
				spec.Type = spec.Name
			}
			if !ir.ComponentType(spec.Type).Valid() {
				tableErr = fmt.Errorf("component table: entry %q has unknown IR type %q", spec.Name, spec.Type)
				return
			}
			t.byName[spec.Name] = spec
			t.bySnake[toSnake(spec.Name)] = spec
		}
		table = t
	})
	return table, tableErr
}

// resolveComponent maps a block-type name to its constructor entry: exact
// table hit first, then the CamelCase name normalized to snake_case and
// looked up again. Unresolved names are a compile error at the caller; a
// broken table is its own error, not an unknown-component one.
func resolveComponent(name string) (componentSpec, bool, error) {
	t, err := loadTable()
	if err != nil {
		return componentSpec{}, false, err
	}
	if spec, ok := t.byName[name]; ok {
		return spec, true, nil
	}
	if spec, ok := t.bySnake[toSnake(name)]; ok {
		return spec, true, nil
	}
	return componentSpec{}, false, nil
}

// toSnake converts capitalized word boundaries to underscore-delimited
// lowercase segments: "TabGroup" -> "tab_group".
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
