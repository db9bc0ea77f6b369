package kry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/kryonlabs/kryon/pkg/ir"
)

// Compile parses one .kry source and generates its IR document. This is the
// whole pipeline for a compilation unit: source text -> AST -> document.
func Compile(filename, source string) (*ir.Document, error) {
	return CompileWith(filename, source, GenerateOptions{})
}

// CompileWith is Compile with explicit generation options.
func CompileWith(filename, source string, opts GenerateOptions) (*ir.Document, error) {
	block, err := Parse(filename, source)
	if err != nil {
		return nil, err
	}
	return GenerateWith(block, opts)
}

// CompileFile compiles a .kry file and writes the IR document next to it
// with a .json extension. Returns the output path.
func CompileFile(filename string) (string, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}

	doc, err := Compile(filename, string(source))
	if err != nil {
		return "", err
	}

	outputFile := strings.TrimSuffix(filename, ".kry") + ".json"
	data, err := doc.Marshal()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return outputFile, nil
}

// GenerateGoFile compiles a .kry file into Go construction code written
// next to it as <name>.kry.go. Returns the output path.
func GenerateGoFile(filename string, opts CodegenOptions) (string, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}

	block, err := Parse(filename, string(source))
	if err != nil {
		return "", err
	}

	if opts.SourceName == "" {
		opts.SourceName = filepath.Base(filename)
	}
	if opts.FuncName == "" {
		opts.FuncName = funcNameFor(filename)
	}

	code, err := GenerateGo(block, opts)
	if err != nil {
		return "", err
	}

	outputFile := strings.TrimSuffix(filename, ".kry") + ".kry.go"
	if err := os.WriteFile(outputFile, []byte(code), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return outputFile, nil
}

// FindSources walks dir for .kry files.
func FindSources(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".kry" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return files, nil
}

// funcNameFor derives a generated constructor name from the source file:
// "counter_app.kry" -> "BuildCounterApp".
func funcNameFor(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), ".kry")
	var b strings.Builder
	b.WriteString("Build")
	upper := true
	for _, r := range base {
		if r == '_' || r == '-' || r == '.' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
