package ir

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ComponentType identifies the kind of a component node.
// The set is closed: decoding any other value is an error.
type ComponentType string

const (
	TypeContainer  ComponentType = "Container"
	TypeRow        ComponentType = "Row"
	TypeColumn     ComponentType = "Column"
	TypeCenter     ComponentType = "Center"
	TypeText       ComponentType = "Text"
	TypeButton     ComponentType = "Button"
	TypeInput      ComponentType = "Input"
	TypeCheckbox   ComponentType = "Checkbox"
	TypeTabGroup   ComponentType = "TabGroup"
	TypeTabBar     ComponentType = "TabBar"
	TypeTab        ComponentType = "Tab"
	TypeTabContent ComponentType = "TabContent"
	TypeTabPanel   ComponentType = "TabPanel"
	TypeTable      ComponentType = "Table"
	TypeTableRow   ComponentType = "TableRow"
	TypeTableCell  ComponentType = "TableCell"
	TypeDropdown   ComponentType = "Dropdown"
	TypeScrollable ComponentType = "Scrollable"
)

var componentTypes = map[ComponentType]bool{
	TypeContainer: true, TypeRow: true, TypeColumn: true, TypeCenter: true,
	TypeText: true, TypeButton: true, TypeInput: true, TypeCheckbox: true,
	TypeTabGroup: true, TypeTabBar: true, TypeTab: true, TypeTabContent: true,
	TypeTabPanel: true, TypeTable: true, TypeTableRow: true, TypeTableCell: true,
	TypeDropdown: true, TypeScrollable: true,
}

// Valid reports whether t is one of the closed component types.
func (t ComponentType) Valid() bool {
	return componentTypes[t]
}

// UnmarshalJSON rejects component types outside the closed set.
func (t *ComponentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("component type: %w", err)
	}
	ct := ComponentType(s)
	if !ct.Valid() {
		return fmt.Errorf("unknown component type %q", s)
	}
	*t = ct
	return nil
}

// Alignment is a flex alignment constant.
type Alignment string

const (
	AlignStart        Alignment = "start"
	AlignCenter       Alignment = "center"
	AlignEnd          Alignment = "end"
	AlignSpaceBetween Alignment = "space-between"
	AlignSpaceAround  Alignment = "space-around"
)

var alignments = map[Alignment]bool{
	AlignStart: true, AlignCenter: true, AlignEnd: true,
	AlignSpaceBetween: true, AlignSpaceAround: true,
}

// Valid reports whether a is a known alignment constant.
func (a Alignment) Valid() bool {
	return alignments[a]
}

// AlignmentValue is either an alignment constant or a named reference to a
// reactive variable the renderer resolves at runtime. References serialize
// with a "$" prefix ("$tabAlign"); constants serialize as plain strings.
type AlignmentValue struct {
	Constant Alignment
	Signal   string
}

// AlignConst wraps an alignment constant.
func AlignConst(a Alignment) *AlignmentValue {
	return &AlignmentValue{Constant: a}
}

// AlignSignal references a reactive variable by name.
func AlignSignal(name string) *AlignmentValue {
	return &AlignmentValue{Signal: name}
}

// IsSignal reports whether the value is a reactive reference.
func (v AlignmentValue) IsSignal() bool {
	return v.Signal != ""
}

func (v AlignmentValue) String() string {
	if v.IsSignal() {
		return "$" + v.Signal
	}
	return string(v.Constant)
}

// MarshalJSON serializes the value as a plain string.
func (v AlignmentValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON parses either a constant or a "$name" reference.
func (v *AlignmentValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("alignment: %w", err)
	}
	if strings.HasPrefix(s, "$") {
		name := s[1:]
		if name == "" {
			return fmt.Errorf("alignment reference has empty name")
		}
		*v = AlignmentValue{Signal: name}
		return nil
	}
	a := Alignment(s)
	if !a.Valid() {
		return fmt.Errorf("unknown alignment %q", s)
	}
	*v = AlignmentValue{Constant: a}
	return nil
}

// Component is one node of the IR tree. Every field except ID, Type and
// Children is optional; absent fields are omitted on serialization and
// reparse as absent. Numeric optionals are pointers so a set zero survives
// a round trip. Each node is owned by exactly one parent (or the document).
type Component struct {
	ID   uint32        `json:"id"`
	Type ComponentType `json:"type"`

	// Layout
	Width   string   `json:"width,omitempty"`
	Height  string   `json:"height,omitempty"`
	Padding *float64 `json:"padding,omitempty"`
	Margin  *float64 `json:"margin,omitempty"`
	Gap     *float64 `json:"gap,omitempty"`

	// Flex
	JustifyContent *AlignmentValue `json:"justifyContent,omitempty"`
	AlignItems     *AlignmentValue `json:"alignItems,omitempty"`
	FlexGrow       *uint8          `json:"flexGrow,omitempty"`
	FlexShrink     *uint8          `json:"flexShrink,omitempty"`

	// Appearance
	Background string   `json:"background,omitempty"`
	Color      string   `json:"color,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	Opacity    *float64 `json:"opacity,omitempty"`

	// Content
	Content     string `json:"content,omitempty"`
	Text        string `json:"text,omitempty"`
	Title       string `json:"title,omitempty"`
	Value       string `json:"value,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`

	// App window metadata (root containers only)
	WindowTitle  string `json:"windowTitle,omitempty"`
	WindowWidth  *int   `json:"windowWidth,omitempty"`
	WindowHeight *int   `json:"windowHeight,omitempty"`

	Children []Component `json:"children,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at c.
func (c *Component) Count() int {
	n := 1
	for i := range c.Children {
		n += c.Children[i].Count()
	}
	return n
}

// Walk visits c and its descendants pre-order, children in document order.
func (c *Component) Walk(fn func(*Component)) {
	fn(c)
	for i := range c.Children {
		c.Children[i].Walk(fn)
	}
}

// Pointer helpers for the optional numeric fields.

func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
func Uint8(v uint8) *uint8     { return &v }
