package kry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kryonlabs/kryon/pkg/ir"
)

const sampleSource = `App {
    windowTitle: "Demo"
    Center {
        Text { content: "Hi" }
    }
}`

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.kry")
	if err := os.WriteFile(src, []byte(sampleSource), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := CompileFile(src)
	if err != nil {
		t.Fatalf("CompileFile() failed: %v", err)
	}
	if out != filepath.Join(dir, "app.json") {
		t.Errorf("output path = %q", out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ir.ParseDocument(data)
	if err != nil {
		t.Fatalf("written document does not parse: %v", err)
	}
	if doc.Count() != 3 {
		t.Errorf("document has %d nodes, want 3", doc.Count())
	}
}

func TestGenerateGoFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "counter_app.kry")
	if err := os.WriteFile(src, []byte(sampleSource), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := GenerateGoFile(src, CodegenOptions{})
	if err != nil {
		t.Fatalf("GenerateGoFile() failed: %v", err)
	}
	if !strings.HasSuffix(out, "counter_app.kry.go") {
		t.Errorf("output path = %q", out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	code := string(data)
	if !strings.Contains(code, "func BuildCounterApp(") {
		t.Error("generated file missing derived function name")
	}
	if !strings.Contains(code, "from counter_app.kry") {
		t.Error("generated file header missing the source name")
	}
}

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"a.kry", "nested/b.kry", "ignore.txt"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(sampleSource), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := FindSources(dir)
	if err != nil {
		t.Fatalf("FindSources() failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("found %d files, want 2: %v", len(files), files)
	}
}
