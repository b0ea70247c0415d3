package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "dom error",
			code:    "E001",
			wantMsg: "Element not found",
			wantCat: CategoryDOM,
		},
		{
			name:    "host error",
			code:    "E011",
			wantMsg: "Listener binding failed",
			wantCat: CategoryHost,
		},
		{
			name:    "script error",
			code:    "E161",
			wantMsg: "Unknown operation",
			wantCat: CategoryScript,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "page.html")
	if err.Message != `file "page.html" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() = %q, want %q", err.Error(), err.Message)
	}
}

func TestErrorString(t *testing.T) {
	err := New("E002")
	if got := err.Error(); got != "E002: Detached node" {
		t.Errorf("Error() = %q", got)
	}

	err.Wrap(fmt.Errorf("boom"))
	if got := err.Error(); got != "E002: Detached node: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New("E001")
	err := fmt.Errorf("lookup: %w", New("E001").WithDetail("#missing"))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match errors with the same code")
	}
	if stderrors.Is(err, New("E002")) {
		t.Error("errors.Is should not match a different code")
	}

	a := Newf(CategoryDOM, "a")
	b := Newf(CategoryDOM, "a")
	if stderrors.Is(a, b) {
		t.Error("uncoded errors should only match themselves")
	}
	if !stderrors.Is(a, a) {
		t.Error("uncoded error should match itself")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New("E181").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E010") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E003")
	if FromError(orig, "E010") != orig {
		t.Error("FromError should return *Error values unchanged")
	}

	wrapped := FromError(fmt.Errorf("eval failed"), "E010")
	if wrapped.Code != "E010" {
		t.Errorf("Code = %q, want E010", wrapped.Code)
	}
	if wrapped.Wrapped == nil {
		t.Error("expected wrapped cause")
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ops.yaml")
	content := "steps:\n  - one: \"#a\"\n    op: explode\n  - all: li\n    op: clear\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E161").WithLocation(path, 3, 5)
	if err.Location.String() != path+":3:5" {
		t.Errorf("Location = %q", err.Location.String())
	}
	if len(err.Context) == 0 {
		t.Fatal("expected context lines")
	}
	found := false
	for _, line := range err.Context {
		if strings.Contains(line, "explode") {
			found = true
		}
	}
	if !found {
		t.Errorf("context %v does not include the failing line", err.Context)
	}
}

func TestFormat(t *testing.T) {
	err := New("E161").
		WithSuggestion("Use addClass").
		Wrap(fmt.Errorf("op %q", "explode"))

	out := err.FormatPlain()
	for _, want := range []string{"ERROR E161: Unknown operation", "Hint: Use addClass", `Cause: op "explode"`, "https://mkdom.dev/docs/errors/E161"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatPlain() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("FormatPlain() contains ANSI escapes:\n%s", out)
	}
}

func TestFormatMarksLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yaml")
	src := "steps:\n  - one: p\n    op: explode\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out := New("E161").WithLocation(path, 1, 1).FormatPlain()
	if !strings.Contains(out, "→    1 │ steps:") {
		t.Errorf("first line not marked as line 1:\n%s", out)
	}
	if !strings.Contains(out, "       2 │   - one: p") {
		t.Errorf("second line not numbered 2:\n%s", out)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E180").Wrap(stderrors.New("disk gone"))
	err.Location = &Location{File: "page.html", Line: 1}

	var got map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("FormatJSON() is not JSON: %v", jerr)
	}
	for k, want := range map[string]any{"code": "E180", "category": "storage", "cause": "disk gone"} {
		if got[k] != want {
			t.Errorf("FormatJSON()[%q] = %v, want %v", k, got[k], want)
		}
	}
	if loc, _ := got["location"].(map[string]any); loc["file"] != "page.html" {
		t.Errorf("location = %v, want file page.html", got["location"])
	}
}

func TestFprint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var b strings.Builder
	Fprint(&b, fmt.Errorf("apply: %w", New("E140")))
	if !strings.Contains(b.String(), "ERROR E140:") {
		t.Errorf("wrapped coded error = %q, want full rendering", b.String())
	}

	b.Reset()
	Fprint(&b, stderrors.New("plain"))
	if got := b.String(); got != "\nERROR: plain\n\n" {
		t.Errorf("plain error = %q", got)
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Errorf("GetTemplate(%q) not found", code)
			continue
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s is incomplete: %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("DocURL for %s = %q", code, tmpl.DocURL)
		}
	}

	Register("E999", ErrorTemplate{Category: CategoryDOM, Message: "Custom"})
	defer delete(registry, "E999")
	if New("E999").Message != "Custom" {
		t.Error("Register did not add the template")
	}
}
