package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"cssb/config"
	"cssb/recipe"
	"cssb/state"
)

const sampleRecipe = `version: 1
selectors:
  - name: main-box
    id: main
    classes: [container, editable]
    declarations:
      margin: 0 auto
  - name: focused-link
    element: a
    attrs: ['href$=".png"']
    pseudo_classes: [focus]
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = &config.Config{Version: 1}
	return ctx, env
}

func compileSample(t *testing.T) []recipe.Compiled {
	t.Helper()

	doc, err := recipe.Load([]byte(sampleRecipe))
	if err != nil {
		t.Fatalf("load recipe: %v", err)
	}
	compiled, err := doc.Compile(zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))))
	if err != nil {
		t.Fatalf("compile recipe: %v", err)
	}
	return compiled
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:   "render",
		Action: Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to"},
			&cli.StringFlag{Name: "order"},
			&cli.StringFlag{Name: "template"},
			&cli.BoolFlag{Name: "overwrite"},
		},
	}
}

func TestEmitList(t *testing.T) {
	out, err := emit(compileSample(t), config.OutputFmtList, "")
	if err != nil {
		t.Fatalf("emit() error = %v", err)
	}

	want := "#main.container.editable\na[href$=\".png\"]:focus\n"
	if string(out) != want {
		t.Errorf("emit() = %q, want %q", string(out), want)
	}
}

func TestEmitList_WithTemplate(t *testing.T) {
	out, err := emit(compileSample(t), config.OutputFmtList, "{{ .Index }}: {{ .Name }} -> {{ .CSS }}")
	if err != nil {
		t.Fatalf("emit() error = %v", err)
	}

	want := "0: main-box -> #main.container.editable\n1: focused-link -> a[href$=\".png\"]:focus\n"
	if string(out) != want {
		t.Errorf("emit() = %q, want %q", string(out), want)
	}
}

func TestEmitList_BadTemplate(t *testing.T) {
	_, err := emit(compileSample(t), config.OutputFmtList, "{{ .CSS")
	if err == nil {
		t.Fatal("expected template parse error, got nil")
	}
	if !strings.Contains(err.Error(), "unable to expand line template") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestEmitCSS(t *testing.T) {
	out, err := emit(compileSample(t), config.OutputFmtCss, "")
	if err != nil {
		t.Fatalf("emit() error = %v", err)
	}

	// only main-box carries declarations
	want := "#main.container.editable {\n  margin: 0 auto;\n}\n"
	if string(out) != want {
		t.Errorf("emit() = %q, want %q", string(out), want)
	}
}

func TestEmitJSON(t *testing.T) {
	out, err := emit(compileSample(t), config.OutputFmtJson, "")
	if err != nil {
		t.Fatalf("emit() error = %v", err)
	}

	want := `[{"name":"main-box","css":"#main.container.editable","declarations":{"margin":"0 auto"}},` +
		`{"name":"focused-link","css":"a[href$=\".png\"]:focus"}]` + "\n"
	if string(out) != want {
		t.Errorf("emit() = %q, want %q", string(out), want)
	}
}

func TestEmit_UnknownFormatPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("emit() should panic for unknown format")
		}
	}()
	_, _ = emit(compileSample(t), config.OutputFmt(99), "")
}

func TestWriteOutput_NewFile(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	// parent directory does not exist yet
	dst := filepath.Join(t.TempDir(), "sub", "out.css")

	name, err := writeOutput("recipe.yaml", dst, config.OutputFmtCss, []byte("p {\n}\n"), false, logger)
	if err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	if name != dst {
		t.Errorf("writeOutput() name = %q, want %q", name, dst)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "p {\n}\n" {
		t.Errorf("output content = %q", string(data))
	}
}

func TestWriteOutput_ExistingFile(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	dst := filepath.Join(t.TempDir(), "out.css")
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatalf("preparing existing file: %v", err)
	}

	_, err := writeOutput("recipe.yaml", dst, config.OutputFmtCss, []byte("new"), false, logger)
	if err == nil {
		t.Fatal("expected error for existing destination, got nil")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error text: %v", err)
	}

	data, _ := os.ReadFile(dst)
	if string(data) != "old" {
		t.Errorf("existing file should be left alone, got %q", string(data))
	}
}

func TestWriteOutput_Overwrite(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	dst := filepath.Join(t.TempDir(), "out.css")
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatalf("preparing existing file: %v", err)
	}

	name, err := writeOutput("recipe.yaml", dst, config.OutputFmtCss, []byte("new"), true, logger)
	if err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("output content = %q, want replaced text", string(data))
	}
}

func TestWriteOutput_DirectoryDestination(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	dir := t.TempDir()
	name, err := writeOutput("sample.yaml", dir, config.OutputFmtCss, []byte("p {\n}\n"), false, logger)
	if err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}

	if filepath.Base(name) != "sample.css" {
		t.Errorf("derived name = %q, want sample.css", filepath.Base(name))
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestDefaultFileName(t *testing.T) {
	tests := []struct {
		src    string
		format config.OutputFmt
		want   string
	}{
		{"recipe.yaml", config.OutputFmtCss, "recipe.css"},
		{filepath.Join("path", "to", "site.yml"), config.OutputFmtJson, "site.json"},
		{"-", config.OutputFmtList, "cssb.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := defaultFileName(tt.src, tt.format)
			if got != tt.want {
				t.Errorf("defaultFileName(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestRun_EndToEnd(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "sample.yaml")
	if err := os.WriteFile(src, []byte(sampleRecipe), 0644); err != nil {
		t.Fatalf("writing recipe: %v", err)
	}
	dst := filepath.Join(tmpDir, "out.css")

	err := renderCommand().Run(ctx, []string{"render", "--to", "css", src, dst})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "#main.container.editable {\n  margin: 0 auto;\n}\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}
}

func TestRun_OrderFlag(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "sample.yaml")
	if err := os.WriteFile(src, []byte(sampleRecipe), 0644); err != nil {
		t.Fatalf("writing recipe: %v", err)
	}
	dst := filepath.Join(tmpDir, "out.txt")

	err := renderCommand().Run(ctx, []string{"render", "--order", "natural", src, dst})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	// natural ordering by name puts focused-link first
	want := "a[href$=\".png\"]:focus\n#main.container.editable\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}
}

func TestRun_RefusesExistingDestination(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "sample.yaml")
	if err := os.WriteFile(src, []byte(sampleRecipe), 0644); err != nil {
		t.Fatalf("writing recipe: %v", err)
	}
	dst := filepath.Join(tmpDir, "out.txt")
	if err := os.WriteFile(dst, []byte("keep me"), 0644); err != nil {
		t.Fatalf("preparing existing file: %v", err)
	}

	err := renderCommand().Run(ctx, []string{"render", src, dst})
	if err == nil {
		t.Fatal("expected error for existing destination, got nil")
	}

	data, _ := os.ReadFile(dst)
	if string(data) != "keep me" {
		t.Errorf("existing file should be left alone, got %q", string(data))
	}
}

func TestRun_NoSource(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	err := renderCommand().Run(ctx, []string{"render"})
	if err == nil {
		t.Fatal("expected error for missing source, got nil")
	}
	if !strings.Contains(err.Error(), "no input recipe") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestRun_BadRecipe(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(src, []byte("version: 1\nselectors:\n  - name: broken\n"), 0644); err != nil {
		t.Fatalf("writing recipe: %v", err)
	}

	err := renderCommand().Run(ctx, []string{"render", src})
	if err == nil {
		t.Fatal("expected compile error, got nil")
	}
	if !strings.Contains(err.Error(), "unable to compile recipe") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	cancel() // Cancel immediately

	err := Run(cancelCtx, &cli.Command{})
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}
}
