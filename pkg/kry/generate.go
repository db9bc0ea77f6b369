package kry

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kryonlabs/kryon/pkg/ir"
)

// GenerateOptions configure document generation.
type GenerateOptions struct {
	// Variables is the declared reactive manifest. When non-empty, reactive
	// expressions may only reference declared variables; when empty, the
	// generator infers a manifest entry (type "any") per referenced signal.
	Variables []ir.ReactiveVariable
	// Functions are named logic bodies carried into the document verbatim.
	Functions map[string]string
}

// Generate walks one parsed block and deterministically builds the
// equivalent IR document: pre-order id assignment from a single counter,
// constructor resolution through the component table, one setter per
// property in source order. All validation happens here; on error no
// partial document is returned.
func Generate(block *ComponentBlock) (*ir.Document, error) {
	return GenerateWith(block, GenerateOptions{})
}

// GenerateWith is Generate with an explicit reactive manifest and logic
// functions.
func GenerateWith(block *ComponentBlock, opts GenerateOptions) (*ir.Document, error) {
	g := &generator{
		logic:    &ir.Logic{},
		declared: make(map[string]bool),
		seen:     make(map[string]bool),
	}
	for _, v := range opts.Variables {
		g.declared[v.ID] = true
	}
	g.strictVars = len(opts.Variables) > 0

	root, err := g.buildComponent(block)
	if err != nil {
		return nil, err
	}

	doc := ir.NewDocument(root)

	manifest := append([]ir.ReactiveVariable(nil), opts.Variables...)
	for _, name := range g.inferred {
		manifest = append(manifest, ir.ReactiveVariable{ID: name, Type: "any"})
	}
	if len(manifest) > 0 {
		doc.ReactiveManifest = manifest
	}

	if len(opts.Functions) > 0 {
		g.logic.Functions = opts.Functions
	}
	if !g.logic.IsEmpty() {
		doc.Logic = g.logic
	}
	return doc, nil
}

// generator threads the shared id counter and collected logic through the
// recursive build. One generator per document build; never share across
// concurrent invocations.
type generator struct {
	counter    uint32
	logic      *ir.Logic
	declared   map[string]bool
	strictVars bool
	inferred   []string
	seen       map[string]bool
}

// nextID increments the shared counter and returns it, so ids are dense,
// monotonically increasing and match a single pre-order walk. Id 0 is never
// assigned here; it stays available for an outer wrapping root.
func (g *generator) nextID() uint32 {
	g.counter++
	return g.counter
}

func (g *generator) buildComponent(block *ComponentBlock) (ir.Component, error) {
	spec, ok, err := resolveComponent(block.Name)
	if err != nil {
		return ir.Component{}, err
	}
	if !ok {
		return ir.Component{}, errorAt(block.NamePos,
			"unknown component %q (no constructor mapping, tried %q)", block.Name, toSnake(block.Name))
	}

	comp := ir.Component{ID: g.nextID(), Type: ir.ComponentType(spec.Type)}

	for _, p := range block.Properties {
		if event, ok := eventName(p.Name); ok {
			handler, err := eventHandler(p)
			if err != nil {
				return ir.Component{}, err
			}
			g.logic.Events = append(g.logic.Events, ir.EventBinding{
				ComponentID: comp.ID,
				Event:       event,
				Handler:     handler,
			})
			continue
		}

		if p.Value.Kind == ExprOpaque {
			info := Analyze(p.Value)
			if !info.HasGetCalls {
				return ir.Component{}, errorAt(p.Pos,
					"value of %q is a host expression the document generator cannot evaluate; use the Go code generation path", p.Name)
			}
			if _, known := propKinds[p.Name]; !known {
				return ir.Component{}, errorAt(p.Pos, "unknown property %q for %s", p.Name, block.Name)
			}
			if err := g.registerDeps(p, info.Dependencies); err != nil {
				return ir.Component{}, err
			}
			g.logic.Bindings = append(g.logic.Bindings, ir.PropertyBinding{
				ComponentID:  comp.ID,
				Property:     p.Name,
				Expression:   p.Value.Raw,
				Dependencies: info.Dependencies,
			})
			continue
		}

		if err := applyProperty(&comp, block.Name, p); err != nil {
			return ir.Component{}, err
		}
	}

	for _, ch := range block.Children {
		if ch.Block == nil {
			// The document generator has no host evaluator to defer to.
			return ir.Component{}, errorAt(ch.Expr.Pos,
				"expression children require the Go code generation path")
		}
		child, err := g.buildComponent(ch.Block)
		if err != nil {
			return ir.Component{}, err
		}
		comp.Children = append(comp.Children, child)
	}

	return comp, nil
}

func (g *generator) registerDeps(p Property, deps []string) error {
	for _, name := range deps {
		if g.declared[name] {
			continue
		}
		if g.strictVars {
			return errorAt(p.Pos, "property %q reads undeclared reactive variable %q", p.Name, name)
		}
		if !g.seen[name] {
			g.seen[name] = true
			g.inferred = append(g.inferred, name)
		}
	}
	return nil
}

// propKind classifies a property for both generation paths.
type propKind uint8

const (
	propDimension propKind = iota
	propNumber
	propColor
	propAlign
	propFlexFactor
	propText
	propWindowInt
)

var propKinds = map[string]propKind{
	"width":          propDimension,
	"height":         propDimension,
	"padding":        propNumber,
	"margin":         propNumber,
	"gap":            propNumber,
	"fontSize":       propNumber,
	"opacity":        propNumber,
	"background":     propColor,
	"color":          propColor,
	"justifyContent": propAlign,
	"alignItems":     propAlign,
	"flexGrow":       propFlexFactor,
	"flexShrink":     propFlexFactor,
	"content":        propText,
	"text":           propText,
	"title":          propText,
	"value":          propText,
	"placeholder":    propText,
	"windowTitle":    propText,
	"windowWidth":    propWindowInt,
	"windowHeight":   propWindowInt,
}

// initialContentProps are consumed as a constructor argument by the codegen
// path instead of a post-construction setter.
var initialContentProps = map[string]bool{
	"content": true,
	"text":    true,
	"title":   true,
}

func applyProperty(comp *ir.Component, blockName string, p Property) error {
	kind, ok := propKinds[p.Name]
	if !ok {
		return errorAt(p.Pos, "unknown property %q for %s", p.Name, blockName)
	}

	switch kind {
	case propDimension, propColor, propText:
		s, err := wantString(p)
		if err != nil {
			return err
		}
		switch p.Name {
		case "width":
			comp.Width = s
		case "height":
			comp.Height = s
		case "background":
			comp.Background = s
		case "color":
			comp.Color = s
		case "content":
			comp.Content = s
		case "text":
			comp.Text = s
		case "title":
			comp.Title = s
		case "value":
			comp.Value = s
		case "placeholder":
			comp.Placeholder = s
		case "windowTitle":
			comp.WindowTitle = s
		}
	case propNumber:
		n, err := wantNumber(p)
		if err != nil {
			return err
		}
		switch p.Name {
		case "padding":
			comp.Padding = ir.Float(n)
		case "margin":
			comp.Margin = ir.Float(n)
		case "gap":
			comp.Gap = ir.Float(n)
		case "fontSize":
			comp.FontSize = ir.Float(n)
		case "opacity":
			comp.Opacity = ir.Float(n)
		}
	case propFlexFactor:
		n, err := wantNumber(p)
		if err != nil {
			return err
		}
		if n < 0 || n > 255 || n != float64(uint8(n)) {
			return errorAt(p.Pos, "property %q wants a flex factor in 0..255, got %v", p.Name, n)
		}
		if p.Name == "flexGrow" {
			comp.FlexGrow = ir.Uint8(uint8(n))
		} else {
			comp.FlexShrink = ir.Uint8(uint8(n))
		}
	case propWindowInt:
		n, err := wantNumber(p)
		if err != nil {
			return err
		}
		if p.Name == "windowWidth" {
			comp.WindowWidth = ir.Int(int(n))
		} else {
			comp.WindowHeight = ir.Int(int(n))
		}
	case propAlign:
		v, err := wantAlignment(p)
		if err != nil {
			return err
		}
		if p.Name == "justifyContent" {
			comp.JustifyContent = v
		} else {
			comp.AlignItems = v
		}
	}
	return nil
}

func wantString(p Property) (string, error) {
	if p.Value.Kind != ExprString {
		return "", errorAt(p.Pos, "property %q wants a string value, got %s", p.Name, p.Value.Raw)
	}
	return p.Value.Str, nil
}

func wantNumber(p Property) (float64, error) {
	if p.Value.Kind != ExprNumber {
		return 0, errorAt(p.Pos, "property %q wants a numeric value, got %s", p.Name, p.Value.Raw)
	}
	return p.Value.Num, nil
}

// wantAlignment accepts an alignment constant (as identifier or string, in
// camelCase or kebab-case) or a bare identifier naming a reactive variable,
// which becomes a renderer-resolved reference.
func wantAlignment(p Property) (*ir.AlignmentValue, error) {
	var name string
	switch p.Value.Kind {
	case ExprIdent:
		name = p.Value.Ident
	case ExprString:
		name = p.Value.Str
	default:
		return nil, errorAt(p.Pos, "property %q wants an alignment value, got %s", p.Name, p.Value.Raw)
	}
	if a, ok := parseAlignmentName(name); ok {
		return ir.AlignConst(a), nil
	}
	if p.Value.Kind == ExprIdent {
		return ir.AlignSignal(name), nil
	}
	return nil, errorAt(p.Pos, "unknown alignment %q", name)
}

func parseAlignmentName(name string) (ir.Alignment, bool) {
	switch normalizeAlignment(name) {
	case "start":
		return ir.AlignStart, true
	case "center":
		return ir.AlignCenter, true
	case "end":
		return ir.AlignEnd, true
	case "space-between":
		return ir.AlignSpaceBetween, true
	case "space-around":
		return ir.AlignSpaceAround, true
	}
	return "", false
}

func normalizeAlignment(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		case r == '_':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// eventName maps a handler property ("onClick") to its event ("click").
func eventName(prop string) (string, bool) {
	if len(prop) < 3 || !strings.HasPrefix(prop, "on") {
		return "", false
	}
	rest := prop[2:]
	r := rune(rest[0])
	if !unicode.IsUpper(r) {
		return "", false
	}
	return string(unicode.ToLower(r)) + rest[1:], true
}

func eventHandler(p Property) (string, error) {
	switch p.Value.Kind {
	case ExprIdent:
		return p.Value.Ident, nil
	case ExprString:
		return p.Value.Str, nil
	case ExprOpaque:
		return p.Value.Raw, nil
	}
	return "", fmt.Errorf("%s: property %q wants a handler name or expression", p.Pos, p.Name)
}
