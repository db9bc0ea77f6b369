package kry

import (
	"strings"
	"testing"

	"github.com/kryonlabs/kryon/pkg/ir"
)

func mustGenerate(t *testing.T, source string) *ir.Document {
	t.Helper()
	doc, err := Compile("test.kry", source)
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	return doc
}

func TestGenerate_Basic(t *testing.T) {
	doc := mustGenerate(t, `Column {
    width: "100%"
    gap: 20
    Text {
        content: "Hi"
    }
}`)

	if doc.FormatVersion != ir.FormatVersion {
		t.Errorf("format version = %q, want %q", doc.FormatVersion, ir.FormatVersion)
	}

	root := doc.Root
	if root.Type != ir.TypeColumn {
		t.Errorf("root type = %q, want Column", root.Type)
	}
	if root.ID != 1 {
		t.Errorf("root id = %d, want 1", root.ID)
	}
	if root.Width != "100%" {
		t.Errorf("root width = %q, want 100%%", root.Width)
	}
	if root.Gap == nil || *root.Gap != 20 {
		t.Errorf("root gap = %v, want 20", root.Gap)
	}

	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Children))
	}
	text := root.Children[0]
	if text.Type != ir.TypeText || text.ID != 2 {
		t.Errorf("child = %q id %d, want Text id 2", text.Type, text.ID)
	}
	if text.Content != "Hi" {
		t.Errorf("child content = %q, want Hi", text.Content)
	}
}

func TestGenerate_PreOrderIDs(t *testing.T) {
	doc := mustGenerate(t, `App {
    Row {
        Text { content: "a" }
        Text { content: "b" }
    }
    Column {
        Button { text: "c" }
    }
}`)

	var ids []uint32
	doc.Root.Walk(func(c *ir.Component) {
		ids = append(ids, c.ID)
	})
	for i, id := range ids {
		if id != uint32(i+1) {
			t.Fatalf("pre-order ids = %v, want dense sequence from 1", ids)
		}
	}
	if doc.Count() != 6 {
		t.Errorf("Count() = %d, want 6", doc.Count())
	}
}

func TestGenerate_NameNormalization(t *testing.T) {
	camel := mustGenerate(t, `TabGroup { Tab { title: "One" } }`)
	snake := mustGenerate(t, `tab_group { tab { title: "One" } }`)

	if camel.Root.Type != ir.TypeTabGroup {
		t.Errorf("camel root type = %q, want TabGroup", camel.Root.Type)
	}
	if snake.Root.Type != camel.Root.Type {
		t.Errorf("snake_case root type = %q, camel = %q; want the same constructor",
			snake.Root.Type, camel.Root.Type)
	}
	if snake.Root.Children[0].Title != "One" {
		t.Errorf("tab title = %q, want One", snake.Root.Children[0].Title)
	}
}

func TestGenerate_UnknownComponent(t *testing.T) {
	_, err := Compile("test.kry", `Bogus { }`)
	if err == nil {
		t.Fatal("expected error for unknown component")
	}
	if !strings.Contains(err.Error(), "unknown component") ||
		!strings.Contains(err.Error(), "bogus") {
		t.Errorf("error %q should name the component and the tried mapping", err)
	}
}

func TestGenerate_PropertyValidation(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name:    "unknown property",
			source:  `Text { bogus: 1 }`,
			wantErr: "unknown property",
		},
		{
			name:    "string property wants string",
			source:  `Text { content: 5 }`,
			wantErr: "wants a string",
		},
		{
			name:    "numeric property wants number",
			source:  `Column { gap: "big" }`,
			wantErr: "wants a numeric",
		},
		{
			name:    "flex factor range",
			source:  `Column { flexGrow: 300 }`,
			wantErr: "flex factor",
		},
		{
			name:    "fractional flex factor",
			source:  `Column { flexGrow: 1.5 }`,
			wantErr: "flex factor",
		},
		{
			name:    "unknown alignment string",
			source:  `Row { justifyContent: "sideways" }`,
			wantErr: "unknown alignment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile("test.kry", tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate_Alignment(t *testing.T) {
	doc := mustGenerate(t, `Row {
    justifyContent: spaceBetween
    alignItems: "center"
}`)

	if doc.Root.JustifyContent == nil || doc.Root.JustifyContent.Constant != ir.AlignSpaceBetween {
		t.Errorf("justifyContent = %v, want space-between", doc.Root.JustifyContent)
	}
	if doc.Root.AlignItems == nil || doc.Root.AlignItems.Constant != ir.AlignCenter {
		t.Errorf("alignItems = %v, want center", doc.Root.AlignItems)
	}
}

func TestGenerate_AlignmentSignal(t *testing.T) {
	doc := mustGenerate(t, `Row { justifyContent: currentAlign }`)

	jc := doc.Root.JustifyContent
	if jc == nil || !jc.IsSignal() || jc.Signal != "currentAlign" {
		t.Errorf("justifyContent = %v, want signal reference currentAlign", jc)
	}
}

func TestGenerate_Events(t *testing.T) {
	doc := mustGenerate(t, `Column {
    Button {
        text: "+"
        onClick: increment
    }
    Button {
        text: "-"
        onClick: "decrement"
    }
}`)

	if doc.Logic == nil {
		t.Fatal("document has no logic section")
	}
	events := doc.Logic.Events
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ComponentID != 2 || events[0].Event != "click" || events[0].Handler != "increment" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].ComponentID != 3 || events[1].Handler != "decrement" {
		t.Errorf("second event = %+v", events[1])
	}
}

func TestGenerate_ReactiveBinding(t *testing.T) {
	doc := mustGenerate(t, `Text {
    content: "Count: " + count.get()
}`)

	if doc.Root.Content != "" {
		t.Errorf("reactive content should stay unset in the tree, got %q", doc.Root.Content)
	}
	if doc.Logic == nil || len(doc.Logic.Bindings) != 1 {
		t.Fatalf("expected one property binding, got %+v", doc.Logic)
	}
	b := doc.Logic.Bindings[0]
	if b.ComponentID != 1 || b.Property != "content" {
		t.Errorf("binding = %+v", b)
	}
	if b.Expression != `"Count: " + count.get()` {
		t.Errorf("binding expression = %q", b.Expression)
	}
	if len(b.Dependencies) != 1 || b.Dependencies[0] != "count" {
		t.Errorf("binding dependencies = %v, want [count]", b.Dependencies)
	}

	if len(doc.ReactiveManifest) != 1 || doc.ReactiveManifest[0].ID != "count" {
		t.Errorf("inferred manifest = %+v, want one entry for count", doc.ReactiveManifest)
	}
	if doc.ReactiveManifest[0].Type != "any" {
		t.Errorf("inferred manifest type = %q, want any", doc.ReactiveManifest[0].Type)
	}
}

func TestGenerate_DeclaredVariables(t *testing.T) {
	source := `Text { content: "Count: " + count.get() }`
	block, err := Parse("test.kry", source)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	doc, err := GenerateWith(block, GenerateOptions{
		Variables: []ir.ReactiveVariable{{ID: "count", Type: "int", Initial: 0}},
	})
	if err != nil {
		t.Fatalf("GenerateWith() failed: %v", err)
	}
	if len(doc.ReactiveManifest) != 1 || doc.ReactiveManifest[0].Type != "int" {
		t.Errorf("manifest = %+v, want declared count:int", doc.ReactiveManifest)
	}

	// Reading an undeclared variable is an error under a declared manifest.
	block2, err := Parse("test.kry", `Text { content: "" + other.get() }`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	_, err = GenerateWith(block2, GenerateOptions{
		Variables: []ir.ReactiveVariable{{ID: "count", Type: "int"}},
	})
	if err == nil || !strings.Contains(err.Error(), "undeclared reactive variable") {
		t.Errorf("error = %v, want undeclared reactive variable", err)
	}
}

func TestGenerate_OpaqueWithoutGets(t *testing.T) {
	_, err := Compile("test.kry", `Text { content: a + b }`)
	if err == nil {
		t.Fatal("expected error for host expression on the document path")
	}
	if !strings.Contains(err.Error(), "Go code generation path") {
		t.Errorf("error %q should point at the codegen path", err)
	}
}

func TestGenerate_ExpressionChild(t *testing.T) {
	_, err := Compile("test.kry", `Column { items.map(render) }`)
	if err == nil {
		t.Fatal("expected error for expression child on the document path")
	}
	if !strings.Contains(err.Error(), "Go code generation path") {
		t.Errorf("error %q should point at the codegen path", err)
	}
}

func TestGenerate_WindowMetadata(t *testing.T) {
	doc := mustGenerate(t, `App {
    windowTitle: "Demo"
    windowWidth: 800
    windowHeight: 600
}`)

	if doc.Root.Type != ir.TypeContainer {
		t.Errorf("App root type = %q, want Container", doc.Root.Type)
	}
	if doc.Root.WindowTitle != "Demo" {
		t.Errorf("windowTitle = %q", doc.Root.WindowTitle)
	}
	if doc.Root.WindowWidth == nil || *doc.Root.WindowWidth != 800 {
		t.Errorf("windowWidth = %v, want 800", doc.Root.WindowWidth)
	}
	if doc.Root.WindowHeight == nil || *doc.Root.WindowHeight != 600 {
		t.Errorf("windowHeight = %v, want 600", doc.Root.WindowHeight)
	}
}

func TestGenerate_Functions(t *testing.T) {
	block, err := Parse("test.kry", `Button { text: "+" onClick: increment }`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	doc, err := GenerateWith(block, GenerateOptions{
		Functions: map[string]string{"increment": "count.set(count.get() + 1)"},
	})
	if err != nil {
		t.Fatalf("GenerateWith() failed: %v", err)
	}
	if doc.Logic == nil || doc.Logic.Functions["increment"] == "" {
		t.Errorf("logic functions = %+v", doc.Logic)
	}
}
