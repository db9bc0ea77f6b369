package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// FormatVersion is the schema version this package reads and writes.
// Consumers must check it before trusting the document shape.
const FormatVersion = "3.0"

// Document is the root of a serialized IR tree: exactly one root component,
// plus optional reusable component definitions, logic and reactive manifest
// sections.
type Document struct {
	FormatVersion        string                `json:"format_version"`
	ComponentDefinitions []ComponentDefinition `json:"component_definitions,omitempty"`
	Root                 Component             `json:"root"`
	Logic                *Logic                `json:"logic,omitempty"`
	ReactiveManifest     []ReactiveVariable    `json:"reactive_manifest,omitempty"`
}

// ComponentDefinition is a named reusable template.
type ComponentDefinition struct {
	Name string    `json:"name"`
	Root Component `json:"root"`
}

// Logic carries the non-tree parts of a document: named function bodies,
// event bindings and reactive property bindings, the latter two in
// generation order.
type Logic struct {
	Functions map[string]string `json:"functions,omitempty"`
	Events    []EventBinding    `json:"events,omitempty"`
	Bindings  []PropertyBinding `json:"bindings,omitempty"`
}

// IsEmpty reports whether the logic section carries nothing.
func (l *Logic) IsEmpty() bool {
	return l == nil || (len(l.Functions) == 0 && len(l.Events) == 0 && len(l.Bindings) == 0)
}

// EventBinding attaches a named handler to a component event.
type EventBinding struct {
	ComponentID uint32 `json:"componentId"`
	Event       string `json:"event"`
	Handler     string `json:"handler"`
}

// PropertyBinding records that a component property is computed from a
// reactive expression. The expression is carried verbatim; Dependencies
// lists the signal names it reads, first-seen order.
type PropertyBinding struct {
	ComponentID  uint32   `json:"componentId"`
	Property     string   `json:"property"`
	Expression   string   `json:"expression"`
	Dependencies []string `json:"dependencies"`
}

// ReactiveVariable declares one signal in the reactive manifest.
type ReactiveVariable struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Initial any    `json:"initial,omitempty"`
}

// NewDocument wraps a root component into a fresh document at the current
// format version.
func NewDocument(root Component) *Document {
	return &Document{
		FormatVersion: FormatVersion,
		Root:          root,
	}
}

// CheckVersion returns an error unless v is the version this package writes.
// Renderers call this before trusting the schema shape.
func CheckVersion(v string) error {
	if v != FormatVersion {
		return fmt.Errorf("unsupported IR format version %q (expected %q)", v, FormatVersion)
	}
	return nil
}

// Marshal serializes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// Encode writes the document to w as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// ParseDocument decodes a serialized document. Structural problems (invalid
// JSON, unknown component types or alignments, missing root) are errors;
// a missing logic section or reactive manifest decodes to empty.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("invalid IR document: %w", err)
	}
	if d.FormatVersion == "" {
		return nil, fmt.Errorf("invalid IR document: missing format_version")
	}
	if d.Root.Type == "" {
		return nil, fmt.Errorf("invalid IR document: missing root component")
	}
	return &d, nil
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return ParseDocument(data)
}

// Count returns the total number of component nodes in the document tree,
// excluding component definitions.
func (d *Document) Count() int {
	return d.Root.Count()
}

// Find returns a pointer to the component with the given id, or nil. Ids are
// unique within one document, so the first match is the only match.
func (d *Document) Find(id uint32) *Component {
	return findComponent(&d.Root, id)
}

func findComponent(c *Component, id uint32) *Component {
	if c.ID == id {
		return c
	}
	for i := range c.Children {
		if found := findComponent(&c.Children[i], id); found != nil {
			return found
		}
	}
	return nil
}
