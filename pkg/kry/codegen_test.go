package kry

import (
	"strings"
	"testing"
)

func mustGenerateGo(t *testing.T, source string, opts CodegenOptions) string {
	t.Helper()
	block, err := Parse("test.kry", source)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	code, err := GenerateGo(block, opts)
	if err != nil {
		t.Fatalf("GenerateGo() failed: %v", err)
	}
	return code
}

func TestGenerateGo_Basic(t *testing.T) {
	code := mustGenerateGo(t, `Column {
    width: "100%"
    gap: 20
    Text {
        content: "Hi"
    }
}`, CodegenOptions{SourceName: "app.kry"})

	checks := []string{
		"// Code generated by kryon gen from app.kry; DO NOT EDIT.",
		"package ui",
		"func BuildUI() *ir.Document {",
		`builder.Text("Hi")`,
		"Build(2)",
		"builder.Column()",
		`Width("100%")`,
		"Gap(20)",
		"Child(n2)",
		"Build(1)",
		"doc := ir.NewDocument(n1)",
		"return doc",
	}
	for _, want := range checks {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q\n%s", want, code)
		}
	}
}

func TestGenerateGo_Options(t *testing.T) {
	code := mustGenerateGo(t, `Text { content: "x" }`, CodegenOptions{
		Package:  "views",
		FuncName: "BuildMain",
	})
	if !strings.Contains(code, "package views") {
		t.Error("generated code missing package override")
	}
	if !strings.Contains(code, "func BuildMain(") {
		t.Error("generated code missing function name override")
	}
}

func TestGenerateGo_ReactiveBinding(t *testing.T) {
	code := mustGenerateGo(t, `Text {
    content: "Count: " + count.get()
    fontSize: 24
}`, CodegenOptions{Variables: []ReactiveVar{{Name: "count", Type: "int"}}})

	checks := []string{
		// The signal becomes a typed parameter.
		"func BuildUI(count *reactive.Signal[int]) *ir.Document {",
		// Constructor gets a placeholder, the binding applies the value.
		`builder.Text("")`,
		"bind1Content := func() {",
		"if c := doc.Find(1); c != nil {",
		`c.Content = fmt.Sprint("Count: " + count.Get())`,
		"bind1Content()",
		"count.Subscribe(func(int) { bind1Content() })",
		// The binding is also recorded in the document logic.
		`{ComponentID: 1, Property: "content", Expression: "\"Count: \" + count.get()", Dependencies: []string{"count"}}`,
	}
	for _, want := range checks {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q\n%s", want, code)
		}
	}
	if strings.Contains(code, "count.get()") && !strings.Contains(code, `count.get()", Dependencies`) {
		t.Error("reactive read was not rewritten to Get()")
	}
}

func TestGenerateGo_UntypedSignal(t *testing.T) {
	code := mustGenerateGo(t, `Text { content: "" + n.get() }`, CodegenOptions{})
	if !strings.Contains(code, "n *reactive.Signal[any]") {
		t.Errorf("untyped signal should default to any:\n%s", code)
	}
}

func TestGenerateGo_Events(t *testing.T) {
	code := mustGenerateGo(t, `Button {
    text: "+"
    onClick: increment
}`, CodegenOptions{})

	if !strings.Contains(code, `{ComponentID: 1, Event: "click", Handler: "increment"}`) {
		t.Errorf("generated code missing event binding:\n%s", code)
	}
}

func TestGenerateGo_ExpressionChild(t *testing.T) {
	code := mustGenerateGo(t, `Column {
    header()
}`, CodegenOptions{})

	if !strings.Contains(code, "Child(header())") {
		t.Errorf("expression child should be forwarded verbatim:\n%s", code)
	}
}

func TestGenerateGo_NonReactiveOpaque(t *testing.T) {
	code := mustGenerateGo(t, `Text { content: greeting() }`, CodegenOptions{})
	if !strings.Contains(code, "fmt.Sprint(greeting())") {
		t.Errorf("host expression should be forwarded into the constructor:\n%s", code)
	}
}

func TestGenerateGo_Alignment(t *testing.T) {
	code := mustGenerateGo(t, `Row {
    justifyContent: spaceBetween
    alignItems: currentAlign
}`, CodegenOptions{})

	if !strings.Contains(code, "JustifyContent(ir.AlignSpaceBetween)") {
		t.Errorf("constant alignment missing:\n%s", code)
	}
	if !strings.Contains(code, `AlignItemsSignal("currentAlign")`) {
		t.Errorf("signal alignment missing:\n%s", code)
	}
}

func TestGenerateGo_ReactiveAlignmentMustBeBareRead(t *testing.T) {
	block, err := Parse("test.kry", `Row { justifyContent: a.get() + b.get() }`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	_, err = GenerateGo(block, CodegenOptions{})
	if err == nil || !strings.Contains(err.Error(), "single signal read") {
		t.Errorf("error = %v, want single signal read", err)
	}
}

func TestGenerateGo_IDsMatchDocumentPath(t *testing.T) {
	source := `App {
    Row {
        Text { content: "a" }
        Button { text: "b" onClick: press }
    }
}`

	doc := mustGenerate(t, source)
	code := mustGenerateGo(t, source, CodegenOptions{})

	// The Button gets the same id on both paths, so event bindings agree.
	if doc.Logic.Events[0].ComponentID != 4 {
		t.Fatalf("document path button id = %d, want 4", doc.Logic.Events[0].ComponentID)
	}
	if !strings.Contains(code, `{ComponentID: 4, Event: "click", Handler: "press"}`) {
		t.Errorf("codegen path disagrees on the button id:\n%s", code)
	}
	for _, want := range []string{"Build(1)", "Build(2)", "Build(3)", "Build(4)"} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}
}

func TestFuncNameFor(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"counter_app.kry", "BuildCounterApp"},
		{"ui/main.kry", "BuildMain"},
		{"tab-demo.kry", "BuildTabDemo"},
	}
	for _, tt := range tests {
		if got := funcNameFor(tt.file); got != tt.want {
			t.Errorf("funcNameFor(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
