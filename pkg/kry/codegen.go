package kry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kryonlabs/kryon/pkg/ir"
)

// CodegenOptions configure Go source emission.
type CodegenOptions struct {
	// Package for the generated file. Defaults to "ui".
	Package string
	// FuncName of the generated constructor. Defaults to "BuildUI".
	FuncName string
	// SourceName is recorded in the generated-file header.
	SourceName string
	// Variables optionally types the signal parameters: the manifest type
	// tag ("int", "float", "string", "bool") picks the Go element type of
	// the corresponding *reactive.Signal. Untyped signals get "any".
	Variables []ReactiveVar
}

// ReactiveVar declares one signal the generated function binds against.
type ReactiveVar struct {
	Name string
	Type string
}

// GenerateGo emits Go source that constructs the block's document through
// the fluent builder API. The emitted construction sequence mirrors the
// document generator exactly: same id counter rule, same constructor table,
// same setter order. Reactive properties become a closure that re-applies
// the (rewritten) expression from a Subscribe callback; opaque expressions
// and expression children are forwarded verbatim for the Go compiler of the
// generated file to check.
func GenerateGo(block *ComponentBlock, opts CodegenOptions) (string, error) {
	if opts.Package == "" {
		opts.Package = "ui"
	}
	if opts.FuncName == "" {
		opts.FuncName = "BuildUI"
	}

	cg := &codegen{opts: opts, sigTypes: make(map[string]string)}
	for _, v := range opts.Variables {
		cg.sigTypes[v.Name] = goSignalType(v.Type)
	}

	rootVar, err := cg.emitComponent(block)
	if err != nil {
		return "", err
	}
	return cg.assemble(rootVar), nil
}

type codegen struct {
	opts    CodegenOptions
	counter uint32

	nodes    []string // construction statements, post-order
	binds    []string // reactive binding statements, generation order
	events   []string // event binding literals
	bindings []string // property binding literals

	signals  []string // first-seen signal parameter order
	sigSeen  map[string]bool
	sigTypes map[string]string

	needsFmt      bool
	needsReactive bool
}

func (cg *codegen) emitComponent(block *ComponentBlock) (string, error) {
	spec, ok, err := resolveComponent(block.Name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errorAt(block.NamePos,
			"unknown component %q (no constructor mapping, tried %q)", block.Name, toSnake(block.Name))
	}

	cg.counter++
	id := cg.counter
	varName := fmt.Sprintf("n%d", id)

	var chain strings.Builder
	ctor, err := cg.constructorCall(spec, block)
	if err != nil {
		return "", err
	}
	chain.WriteString(ctor)

	for _, p := range block.Properties {
		if spec.Initial != "" && p.Name == spec.Initial {
			// Consumed by the constructor; a reactive value still needs its
			// binding since the constructor got a placeholder.
			if p.Value.Kind == ExprOpaque {
				if info := Analyze(p.Value); info.HasGetCalls {
					if err := cg.emitBinding(id, p, propKinds[p.Name], info); err != nil {
						return "", err
					}
				}
			}
			continue
		}
		if event, ok := eventName(p.Name); ok {
			handler, err := eventHandler(p)
			if err != nil {
				return "", err
			}
			cg.events = append(cg.events,
				fmt.Sprintf("{ComponentID: %d, Event: %q, Handler: %q}", id, event, handler))
			continue
		}
		setter, err := cg.emitProperty(id, p)
		if err != nil {
			return "", err
		}
		chain.WriteString(setter)
	}

	// Children are emitted before the parent statement so their variables
	// exist, but ids were assigned pre-order above.
	var childVars []string
	for _, ch := range block.Children {
		if ch.Block != nil {
			childVar, err := cg.emitComponent(ch.Block)
			if err != nil {
				return "", err
			}
			childVars = append(childVars, childVar)
			continue
		}
		// Opaque expression child: attach as-is, interpretation deferred to
		// the host expression at construction time.
		childVars = append(childVars, cg.rewriteGets(*ch.Expr))
	}

	for _, cv := range childVars {
		chain.WriteString(fmt.Sprintf(".\n\t\tChild(%s)", cv))
	}
	chain.WriteString(fmt.Sprintf(".\n\t\tBuild(%d)", id))

	cg.nodes = append(cg.nodes, fmt.Sprintf("\t%s := %s\n", varName, chain.String()))
	return varName, nil
}

func (cg *codegen) constructorCall(spec componentSpec, block *ComponentBlock) (string, error) {
	if spec.Constructor == "" {
		return fmt.Sprintf("builder.New(ir.Type%s)", spec.Type), nil
	}
	if spec.Initial == "" {
		return fmt.Sprintf("builder.%s()", spec.Constructor), nil
	}
	// Initial-content property becomes the constructor's required argument.
	arg := `""`
	for _, p := range block.Properties {
		if p.Name != spec.Initial {
			continue
		}
		switch p.Value.Kind {
		case ExprString:
			arg = strconv.Quote(p.Value.Str)
		case ExprNumber:
			cg.needsFmt = true
			arg = fmt.Sprintf("fmt.Sprint(%s)", formatFloat(p.Value.Num))
		case ExprOpaque:
			info := Analyze(p.Value)
			if info.HasGetCalls {
				// Built with a placeholder; the binding closure below
				// applies the real value once before the function returns.
				arg = `""`
			} else {
				cg.needsFmt = true
				arg = fmt.Sprintf("fmt.Sprint(%s)", cg.rewriteGets(p.Value))
			}
		default:
			return "", errorAt(p.Pos, "property %q wants a string value, got %s", p.Name, p.Value.Raw)
		}
		break
	}
	return fmt.Sprintf("builder.%s(%s)", spec.Constructor, arg), nil
}

func (cg *codegen) emitProperty(id uint32, p Property) (string, error) {
	kind, known := propKinds[p.Name]

	if p.Value.Kind == ExprOpaque {
		info := Analyze(p.Value)
		if info.HasGetCalls {
			if !known {
				return "", errorAt(p.Pos, "unknown property %q", p.Name)
			}
			if err := cg.emitBinding(id, p, kind, info); err != nil {
				return "", err
			}
			return "", nil // no setter; the binding closure applies it
		}
		if !known {
			return "", errorAt(p.Pos, "unknown property %q", p.Name)
		}
		// Non-reactive host expression: forward unchanged.
		return fmt.Sprintf(".\n\t\t%s(%s)", setterName(p.Name), cg.rewriteGets(p.Value)), nil
	}

	if !known {
		return "", errorAt(p.Pos, "unknown property %q", p.Name)
	}

	switch kind {
	case propDimension, propColor, propText:
		s, err := wantString(p)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(".\n\t\t%s(%s)", setterName(p.Name), strconv.Quote(s)), nil
	case propNumber:
		n, err := wantNumber(p)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(".\n\t\t%s(%s)", setterName(p.Name), formatFloat(n)), nil
	case propFlexFactor, propWindowInt:
		n, err := wantNumber(p)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(".\n\t\t%s(%d)", setterName(p.Name), int(n)), nil
	case propAlign:
		v, err := wantAlignment(p)
		if err != nil {
			return "", err
		}
		if v.IsSignal() {
			return fmt.Sprintf(".\n\t\t%sSignal(%q)", setterName(p.Name), v.Signal), nil
		}
		return fmt.Sprintf(".\n\t\t%s(%s)", setterName(p.Name), alignConstName(v.Constant)), nil
	}
	return "", errorAt(p.Pos, "unknown property %q", p.Name)
}

// emitBinding emits the subscribe-on-change wrapper for a reactive property:
// a closure that re-evaluates the rewritten expression and assigns the
// field, applied once at build time and again from every dependency's
// Subscribe callback.
func (cg *codegen) emitBinding(id uint32, p Property, kind propKind, info ReactiveInfo) error {
	cg.needsReactive = true
	expr := cg.rewriteGets(p.Value)

	var assign string
	switch kind {
	case propText, propDimension, propColor:
		cg.needsFmt = true
		assign = fmt.Sprintf("c.%s = fmt.Sprint(%s)", fieldName(p.Name), expr)
	case propNumber:
		assign = fmt.Sprintf("c.%s = ir.Float(float64(%s))", fieldName(p.Name), expr)
	case propFlexFactor:
		assign = fmt.Sprintf("c.%s = ir.Uint8(uint8(%s))", fieldName(p.Name), expr)
	case propWindowInt:
		assign = fmt.Sprintf("c.%s = ir.Int(int(%s))", fieldName(p.Name), expr)
	case propAlign:
		// A reactive alignment must be a single bare signal read; the
		// renderer resolves the reference at runtime.
		if len(info.Dependencies) != 1 || strings.TrimSpace(p.Value.Raw) != info.Dependencies[0]+".get()" {
			return errorAt(p.Pos, "reactive %q must be a single signal read", p.Name)
		}
		assign = fmt.Sprintf("c.%s = ir.AlignSignal(%q)", fieldName(p.Name), info.Dependencies[0])
	}

	bindName := fmt.Sprintf("bind%d%s", id, fieldName(p.Name))
	var b strings.Builder
	fmt.Fprintf(&b, "\t%s := func() {\n", bindName)
	fmt.Fprintf(&b, "\t\tif c := doc.Find(%d); c != nil {\n", id)
	fmt.Fprintf(&b, "\t\t\t%s\n", assign)
	b.WriteString("\t\t}\n")
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\t%s()\n", bindName)
	for _, dep := range info.Dependencies {
		cg.recordSignal(dep)
		fmt.Fprintf(&b, "\t%s.Subscribe(func(%s) { %s() })\n", dep, cg.sigType(dep), bindName)
	}
	cg.binds = append(cg.binds, b.String())

	cg.bindings = append(cg.bindings, fmt.Sprintf(
		"{ComponentID: %d, Property: %q, Expression: %q, Dependencies: %s}",
		id, p.Name, p.Value.Raw, goStringSlice(info.Dependencies)))
	return nil
}

// rewriteGets rewrites every dependency access `x.get()` to the signal
// runtime's `x.Get()` and returns the expression text otherwise unchanged.
func (cg *codegen) rewriteGets(e Expr) string {
	if len(e.Tokens) == 0 {
		return e.Raw
	}
	base := e.Tokens[0].Start
	out := []byte(e.Raw)
	toks := e.Tokens
	for i := len(toks) - 5; i >= 0; i-- {
		if toks[i].Kind != TokenIdent ||
			toks[i+1].Kind != TokenDot ||
			toks[i+2].Kind != TokenIdent || toks[i+2].Text != "get" ||
			toks[i+3].Kind != TokenLParen ||
			toks[i+4].Kind != TokenRParen {
			continue
		}
		if i > 0 {
			prev := toks[i-1].Kind
			if prev == TokenDot || prev == TokenRParen || prev == TokenRBracket {
				continue
			}
		}
		cg.recordSignal(toks[i].Text)
		out[toks[i+2].Start-base] = 'G'
	}
	return string(out)
}

func (cg *codegen) recordSignal(name string) {
	if cg.sigSeen == nil {
		cg.sigSeen = make(map[string]bool)
	}
	if !cg.sigSeen[name] {
		cg.sigSeen[name] = true
		cg.signals = append(cg.signals, name)
	}
	cg.needsReactive = true
}

func (cg *codegen) sigType(name string) string {
	if t, ok := cg.sigTypes[name]; ok {
		return t
	}
	return "any"
}

func (cg *codegen) assemble(rootVar string) string {
	var b strings.Builder

	source := cg.opts.SourceName
	if source == "" {
		source = "kry source"
	}
	fmt.Fprintf(&b, "// Code generated by kryon gen from %s; DO NOT EDIT.\n\n", source)
	fmt.Fprintf(&b, "package %s\n\n", cg.opts.Package)

	b.WriteString("import (\n")
	if cg.needsFmt {
		b.WriteString("\t\"fmt\"\n\n")
	}
	b.WriteString("\t\"github.com/kryonlabs/kryon/pkg/builder\"\n")
	b.WriteString("\t\"github.com/kryonlabs/kryon/pkg/ir\"\n")
	if cg.needsReactive {
		b.WriteString("\t\"github.com/kryonlabs/kryon/pkg/reactive\"\n")
	}
	b.WriteString(")\n\n")

	var params []string
	for _, sig := range cg.signals {
		params = append(params, fmt.Sprintf("%s *reactive.Signal[%s]", sig, cg.sigType(sig)))
	}

	fmt.Fprintf(&b, "// %s assembles the document declared in %s.\n", cg.opts.FuncName, source)
	fmt.Fprintf(&b, "func %s(%s) *ir.Document {\n", cg.opts.FuncName, strings.Join(params, ", "))
	for _, stmt := range cg.nodes {
		b.WriteString(stmt)
	}
	fmt.Fprintf(&b, "\tdoc := ir.NewDocument(%s)\n", rootVar)

	if len(cg.events) > 0 || len(cg.bindings) > 0 {
		b.WriteString("\tdoc.Logic = &ir.Logic{\n")
		if len(cg.events) > 0 {
			b.WriteString("\t\tEvents: []ir.EventBinding{\n")
			for _, e := range cg.events {
				fmt.Fprintf(&b, "\t\t\t%s,\n", e)
			}
			b.WriteString("\t\t},\n")
		}
		if len(cg.bindings) > 0 {
			b.WriteString("\t\tBindings: []ir.PropertyBinding{\n")
			for _, pb := range cg.bindings {
				fmt.Fprintf(&b, "\t\t\t%s,\n", pb)
			}
			b.WriteString("\t\t},\n")
		}
		b.WriteString("\t}\n")
	}

	if len(cg.opts.Variables) > 0 {
		b.WriteString("\tdoc.ReactiveManifest = []ir.ReactiveVariable{\n")
		for _, v := range cg.opts.Variables {
			fmt.Fprintf(&b, "\t\t{ID: %q, Type: %q},\n", v.Name, v.Type)
		}
		b.WriteString("\t}\n")
	}

	for _, bind := range cg.binds {
		b.WriteString(bind)
	}

	b.WriteString("\treturn doc\n")
	b.WriteString("}\n")
	return b.String()
}

func setterName(prop string) string {
	return strings.ToUpper(prop[:1]) + prop[1:]
}

// fieldName maps a property to its ir.Component field.
func fieldName(prop string) string {
	return strings.ToUpper(prop[:1]) + prop[1:]
}

func alignConstName(a ir.Alignment) string {
	switch a {
	case ir.AlignStart:
		return "ir.AlignStart"
	case ir.AlignCenter:
		return "ir.AlignCenter"
	case ir.AlignEnd:
		return "ir.AlignEnd"
	case ir.AlignSpaceBetween:
		return "ir.AlignSpaceBetween"
	default:
		return "ir.AlignSpaceAround"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func goStringSlice(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

func goSignalType(tag string) string {
	switch strings.ToLower(tag) {
	case "int", "integer":
		return "int"
	case "float", "number":
		return "float64"
	case "string":
		return "string"
	case "bool", "boolean":
		return "bool"
	default:
		return "any"
	}
}
