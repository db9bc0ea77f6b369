// Package builder is the fluent construction API for IR component trees.
// It is the hand-written alternative to the .kry DSL: the code generator
// emits calls against this package, and humans can use it directly.
package builder

import (
	"github.com/kryonlabs/kryon/pkg/ir"
)

// Builder accumulates optional fields for one component before producing a
// final immutable node with Build. The zero Builder is not usable; start
// from one of the constructors.
type Builder struct {
	c ir.Component
}

// New returns a builder for an arbitrary component type. The typed
// constructors below are preferred where one exists.
func New(t ir.ComponentType) *Builder {
	return &Builder{c: ir.Component{Type: t}}
}

// Container returns a builder for a generic container.
func Container() *Builder { return New(ir.TypeContainer) }

// Row returns a builder for a horizontal flex row.
func Row() *Builder { return New(ir.TypeRow) }

// Column returns a builder for a vertical flex column.
func Column() *Builder { return New(ir.TypeColumn) }

// Center returns a builder for a centering container.
func Center() *Builder { return New(ir.TypeCenter) }

// Scrollable returns a builder for a scrollable region.
func Scrollable() *Builder { return New(ir.TypeScrollable) }

// Text returns a text builder with its initial content.
func Text(content string) *Builder {
	b := New(ir.TypeText)
	b.c.Content = content
	return b
}

// Button returns a button builder with its label.
func Button(text string) *Builder {
	b := New(ir.TypeButton)
	b.c.Text = text
	return b
}

// Input returns a builder for a text input.
func Input() *Builder { return New(ir.TypeInput) }

// Checkbox returns a builder for a checkbox.
func Checkbox() *Builder { return New(ir.TypeCheckbox) }

// Dropdown returns a builder for a dropdown.
func Dropdown() *Builder { return New(ir.TypeDropdown) }

// TabGroup returns a builder for a tab group.
func TabGroup() *Builder { return New(ir.TypeTabGroup) }

// Tab returns a tab builder with its title.
func Tab(title string) *Builder {
	b := New(ir.TypeTab)
	b.c.Title = title
	return b
}

// Layout

func (b *Builder) Width(w string) *Builder  { b.c.Width = w; return b }
func (b *Builder) Height(h string) *Builder { b.c.Height = h; return b }

func (b *Builder) Padding(v float64) *Builder { b.c.Padding = ir.Float(v); return b }
func (b *Builder) Margin(v float64) *Builder  { b.c.Margin = ir.Float(v); return b }
func (b *Builder) Gap(v float64) *Builder     { b.c.Gap = ir.Float(v); return b }

// Flex

func (b *Builder) JustifyContent(a ir.Alignment) *Builder {
	b.c.JustifyContent = ir.AlignConst(a)
	return b
}

func (b *Builder) AlignItems(a ir.Alignment) *Builder {
	b.c.AlignItems = ir.AlignConst(a)
	return b
}

// JustifyContentSignal binds justifyContent to a reactive variable resolved
// by the renderer at runtime.
func (b *Builder) JustifyContentSignal(name string) *Builder {
	b.c.JustifyContent = ir.AlignSignal(name)
	return b
}

// AlignItemsSignal binds alignItems to a reactive variable.
func (b *Builder) AlignItemsSignal(name string) *Builder {
	b.c.AlignItems = ir.AlignSignal(name)
	return b
}

func (b *Builder) FlexGrow(v uint8) *Builder   { b.c.FlexGrow = ir.Uint8(v); return b }
func (b *Builder) FlexShrink(v uint8) *Builder { b.c.FlexShrink = ir.Uint8(v); return b }

// Appearance

func (b *Builder) Background(color string) *Builder { b.c.Background = color; return b }
func (b *Builder) Color(color string) *Builder      { b.c.Color = color; return b }
func (b *Builder) FontSize(v float64) *Builder      { b.c.FontSize = ir.Float(v); return b }
func (b *Builder) Opacity(v float64) *Builder       { b.c.Opacity = ir.Float(v); return b }

// Content

func (b *Builder) Content(s string) *Builder     { b.c.Content = s; return b }
func (b *Builder) Text(s string) *Builder        { b.c.Text = s; return b }
func (b *Builder) Title(s string) *Builder       { b.c.Title = s; return b }
func (b *Builder) Value(s string) *Builder       { b.c.Value = s; return b }
func (b *Builder) Placeholder(s string) *Builder { b.c.Placeholder = s; return b }

// App window metadata

func (b *Builder) WindowTitle(s string) *Builder { b.c.WindowTitle = s; return b }
func (b *Builder) WindowWidth(v int) *Builder    { b.c.WindowWidth = ir.Int(v); return b }
func (b *Builder) WindowHeight(v int) *Builder   { b.c.WindowHeight = ir.Int(v); return b }

// Child appends one child node.
func (b *Builder) Child(child ir.Component) *Builder {
	b.c.Children = append(b.c.Children, child)
	return b
}

// Children appends several child nodes in order.
func (b *Builder) Children(children ...ir.Component) *Builder {
	b.c.Children = append(b.c.Children, children...)
	return b
}

// Build finalizes the component with the given id. The result is immutable
// from the builder's perspective; the builder must not be reused.
func (b *Builder) Build(id uint32) ir.Component {
	b.c.ID = id
	return b.c
}

// Document builds the component and wraps it into a fresh document. The
// root conventionally takes id 0 when it is an outer wrapper the DSL never
// numbered, or its pre-order id otherwise.
func (b *Builder) Document(id uint32) *ir.Document {
	return ir.NewDocument(b.Build(id))
}
