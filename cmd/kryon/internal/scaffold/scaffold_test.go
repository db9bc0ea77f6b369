package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/config"
	"github.com/kryonlabs/kryon/pkg/kry"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	cfg := &ProjectConfig{
		Name:      "demo",
		Directory: filepath.Join(dir, "demo"),
		Template:  "hello",
		Port:      8080,
	}

	if err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	loaded, err := config.Load(cfg.Directory)
	if err != nil {
		t.Fatalf("generated kryon.json does not load: %v", err)
	}
	if loaded.Dev.Port != 8080 {
		t.Errorf("port = %d, want 8080", loaded.Dev.Port)
	}

	appPath := filepath.Join(cfg.Directory, "ui", "app.kry")
	source, err := os.ReadFile(appPath)
	if err != nil {
		t.Fatalf("starter source missing: %v", err)
	}
	// The starter must compile on the document path.
	if _, err := kry.Compile(appPath, string(source)); err != nil {
		t.Errorf("starter source does not compile: %v", err)
	}
}

func TestGenerate_CounterTemplateNeedsCodegen(t *testing.T) {
	dir := t.TempDir()
	cfg := &ProjectConfig{
		Name:      "counter",
		Directory: filepath.Join(dir, "counter"),
		Template:  "counter",
	}
	if err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	appPath := filepath.Join(cfg.Directory, "ui", "app.kry")
	source, err := os.ReadFile(appPath)
	if err != nil {
		t.Fatal(err)
	}

	// The counter template uses a reactive expression; it still compiles on
	// the document path because the read becomes a property binding.
	doc, err := kry.Compile(appPath, string(source))
	if err != nil {
		t.Fatalf("counter source does not compile: %v", err)
	}
	if doc.Logic == nil || len(doc.Logic.Bindings) == 0 {
		t.Error("counter document has no reactive bindings")
	}
	if len(doc.Logic.Events) != 2 {
		t.Errorf("counter document has %d events, want 2", len(doc.Logic.Events))
	}

	// The signal the template reads is declared and typed in kryon.json so
	// generated Go code gets a typed parameter.
	loaded, err := config.Load(cfg.Directory)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Variables) != 1 || loaded.Variables[0].Name != "count" || loaded.Variables[0].Type != "int" {
		t.Errorf("counter variables = %+v, want count:int", loaded.Variables)
	}
}

func TestGenerate_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "demo")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}

	err := Generate(&ProjectConfig{Name: "demo", Directory: target, Template: "hello"})
	if err == nil {
		t.Fatal("expected error for existing directory")
	}
}

func TestGenerate_UnknownTemplate(t *testing.T) {
	err := Generate(&ProjectConfig{
		Name:      "demo",
		Directory: filepath.Join(t.TempDir(), "demo"),
		Template:  "bogus",
	})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}
