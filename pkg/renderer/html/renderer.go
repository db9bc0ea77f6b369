// Package html is the reference renderer: it consumes a serialized IR
// document and produces static HTML. It exists so the preview server has
// something to show and so the renderer-side contract (version check first,
// then trust the schema) has an in-tree consumer.
package html

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/kryonlabs/kryon/pkg/ir"
)

// tags maps component types to their HTML elements. Anything not listed
// renders as a div with a data-kryon attribute carrying the type.
var tags = map[ir.ComponentType]string{
	ir.TypeText:      "span",
	ir.TypeButton:    "button",
	ir.TypeInput:     "input",
	ir.TypeCheckbox:  "input",
	ir.TypeTable:     "table",
	ir.TypeTableRow:  "tr",
	ir.TypeTableCell: "td",
	ir.TypeDropdown:  "select",
}

// flexDirections gives the flex direction of container-like types.
var flexDirections = map[ir.ComponentType]string{
	ir.TypeRow:    "row",
	ir.TypeColumn: "column",
}

// voidTags cannot have children.
var voidTags = map[string]bool{
	"input": true,
}

// Renderer writes an IR document as HTML.
type Renderer struct {
	w   io.Writer
	err error
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render checks the document's format version and renders its tree. Any
// other version is potentially incompatible and rejected here, not patched
// over.
func (r *Renderer) Render(doc *ir.Document) error {
	if err := ir.CheckVersion(doc.FormatVersion); err != nil {
		return err
	}
	r.renderComponent(&doc.Root)
	return r.err
}

// RenderToString renders a document into a string.
func RenderToString(doc *ir.Document) (string, error) {
	var buf strings.Builder
	if err := NewRenderer(&buf).Render(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) renderComponent(c *ir.Component) {
	if r.err != nil {
		return
	}

	tag, ok := tags[c.Type]
	if !ok {
		tag = "div"
	}

	r.write("<")
	r.write(tag)
	r.write(fmt.Sprintf(` data-kryon="%s" data-id="%d"`, c.Type, c.ID))

	if c.Type == ir.TypeCheckbox {
		r.write(` type="checkbox"`)
	}
	if c.Value != "" {
		r.write(` value="` + html.EscapeString(c.Value) + `"`)
	}
	if c.Placeholder != "" {
		r.write(` placeholder="` + html.EscapeString(c.Placeholder) + `"`)
	}
	if c.Title != "" {
		r.write(` title="` + html.EscapeString(c.Title) + `"`)
	}

	if style := styleOf(c); style != "" {
		r.write(` style="` + html.EscapeString(style) + `"`)
	}
	r.write(">")

	if voidTags[tag] {
		return
	}

	switch {
	case c.Content != "":
		r.write(html.EscapeString(c.Content))
	case c.Text != "":
		r.write(html.EscapeString(c.Text))
	}

	for i := range c.Children {
		r.renderComponent(&c.Children[i])
	}

	r.write("</" + tag + ">")
}

// styleOf flattens the typed style fields into an inline style declaration.
func styleOf(c *ir.Component) string {
	var parts []string
	add := func(prop, value string) {
		parts = append(parts, prop+":"+value)
	}

	if dir, ok := flexDirections[c.Type]; ok {
		add("display", "flex")
		add("flex-direction", dir)
	}
	if c.Type == ir.TypeCenter {
		add("display", "flex")
		add("justify-content", "center")
		add("align-items", "center")
	}
	if c.Type == ir.TypeScrollable {
		add("overflow", "auto")
	}

	if c.Width != "" {
		add("width", c.Width)
	}
	if c.Height != "" {
		add("height", c.Height)
	}
	if c.Padding != nil {
		add("padding", formatPx(*c.Padding))
	}
	if c.Margin != nil {
		add("margin", formatPx(*c.Margin))
	}
	if c.Gap != nil {
		add("gap", formatPx(*c.Gap))
	}
	if c.Background != "" {
		add("background", c.Background)
	}
	if c.Color != "" {
		add("color", c.Color)
	}
	if c.FontSize != nil {
		add("font-size", formatPx(*c.FontSize))
	}
	if c.Opacity != nil {
		add("opacity", trimFloat(*c.Opacity))
	}
	if c.JustifyContent != nil && !c.JustifyContent.IsSignal() {
		add("justify-content", cssAlignment(c.JustifyContent.Constant))
	}
	if c.AlignItems != nil && !c.AlignItems.IsSignal() {
		add("align-items", cssAlignment(c.AlignItems.Constant))
	}
	if c.FlexGrow != nil {
		add("flex-grow", fmt.Sprintf("%d", *c.FlexGrow))
	}
	if c.FlexShrink != nil {
		add("flex-shrink", fmt.Sprintf("%d", *c.FlexShrink))
	}

	return strings.Join(parts, ";")
}

func cssAlignment(a ir.Alignment) string {
	switch a {
	case ir.AlignStart:
		return "flex-start"
	case ir.AlignEnd:
		return "flex-end"
	default:
		return string(a)
	}
}

func formatPx(v float64) string {
	return trimFloat(v) + "px"
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
