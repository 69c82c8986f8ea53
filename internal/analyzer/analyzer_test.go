package analyzer

import (
	"strings"
	"testing"
)

func TestDetectLanguageByExtension(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"main.py", "python"},
		{"app.js", "javascript"},
		{"app.tsx", "typescript"},
		{"Main.java", "java"},
		{"main.go", "go"},
		{"notes.md", "markdown"},
		{"README.TXT", "text"},
		{"mystery.bin", "unknown"},
		{"", "unknown"},
	}
	for _, c := range cases {
		if got := DetectLanguage(c.path, ""); got != c.want {
			t.Fatalf("DetectLanguage(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestDetectLanguageByContent(t *testing.T) {
	cases := []struct {
		content, want string
	}{
		{"import os\n\ndef main():\n    pass\n", "python"},
		{"const add = (a, b) => a + b\nexport default add\n", "javascript"},
		{"<?php echo 'hi'; ?>", "php"},
		{"public class Main {}\n", "java"},
		{"#include <iostream>\nint main() { return 0; }\n", "cpp"},
		{"using System;\nnamespace App {}\n", "csharp"},
		{"just some prose", "unknown"},
	}
	for _, c := range cases {
		if got := DetectLanguage("noext", c.content); got != c.want {
			t.Fatalf("content %q detected as %q, want %q", c.content[:20], got, c.want)
		}
	}
}

func TestAnalyzePythonFile(t *testing.T) {
	content := "import os\nfrom json import dumps\n\nclass Store:\n    def save(self):\n        pass\n\ndef main():\n    pass\n"
	a := AnalyzeFile("store.py", content)
	if a.Language != "python" {
		t.Fatalf("language = %q", a.Language)
	}
	if len(a.Functions) != 2 || a.Functions[0] != "save" || a.Functions[1] != "main" {
		t.Fatalf("functions = %v", a.Functions)
	}
	if len(a.Classes) != 1 || a.Classes[0] != "Store" {
		t.Fatalf("classes = %v", a.Classes)
	}
	if len(a.Imports) != 2 {
		t.Fatalf("imports = %v", a.Imports)
	}
}

func TestAnalyzeJavaScriptFile(t *testing.T) {
	content := "import React from 'react'\n\nclass App {}\n\nfunction render() {}\nconst handler = (e) => {}\n"
	a := AnalyzeFile("app.js", content)
	if len(a.Functions) != 2 {
		t.Fatalf("functions = %v", a.Functions)
	}
	if len(a.Classes) != 1 || a.Classes[0] != "App" {
		t.Fatalf("classes = %v", a.Classes)
	}
	if len(a.Imports) != 1 || a.Imports[0] != "react" {
		t.Fatalf("imports = %v", a.Imports)
	}
}

func TestComplexityBuckets(t *testing.T) {
	if got := complexityBucket("def a():\n    pass\n", "python"); got != ComplexitySimple {
		t.Fatalf("tiny file bucket = %q", got)
	}

	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("if (x) { y(); }\n")
	}
	if got := complexityBucket(b.String(), "javascript"); got != ComplexityModerate {
		t.Fatalf("10-branch file bucket = %q", got)
	}

	b.Reset()
	for i := 0; i < 20; i++ {
		b.WriteString("while (x) { y(); }\n")
	}
	if got := complexityBucket(b.String(), "javascript"); got != ComplexityComplex {
		t.Fatalf("20-branch file bucket = %q", got)
	}
}

func TestSuggestions(t *testing.T) {
	long := FileAnalysis{Lines: 400, Complexity: ComplexitySimple}
	out := suggestions(long)
	if len(out) != 1 || !strings.Contains(out[0], "smaller modules") {
		t.Fatalf("long file suggestions = %v", out)
	}

	classless := FileAnalysis{
		Functions:  []string{"a", "b", "c", "d", "e", "f"},
		Complexity: ComplexitySimple,
	}
	out = suggestions(classless)
	if len(out) != 1 || !strings.Contains(out[0], "organizing functions into classes") {
		t.Fatalf("classless suggestions = %v", out)
	}

	clean := FileAnalysis{Lines: 10, Complexity: ComplexitySimple}
	if out = suggestions(clean); len(out) != 0 {
		t.Fatalf("clean file suggestions = %v", out)
	}
}
