// Package analyzer does best-effort static profiling of text files and
// directory trees. It is deliberately heuristic: regex extraction, not
// parsing.
package analyzer

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Complexity buckets.
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

// FileAnalysis is the profile of a single text file.
type FileAnalysis struct {
	Language    string   `json:"language"`
	Lines       int      `json:"lines"`
	Characters  int      `json:"characters"`
	Functions   []string `json:"functions"`
	Classes     []string `json:"classes"`
	Imports     []string `json:"imports"`
	Complexity  string   `json:"complexity"`
	Suggestions []string `json:"suggestions"`
}

var extensionLanguages = map[string]string{
	".py": "python", ".js": "javascript", ".ts": "typescript", ".tsx": "typescript",
	".jsx": "javascript", ".java": "java", ".cpp": "cpp", ".c": "c", ".cs": "csharp",
	".php": "php", ".rb": "ruby", ".go": "go", ".rs": "rust", ".swift": "swift",
	".kt": "kotlin", ".scala": "scala", ".html": "html", ".css": "css", ".scss": "scss",
	".sass": "sass", ".less": "less", ".json": "json", ".xml": "xml", ".yaml": "yaml",
	".yml": "yaml", ".toml": "toml", ".md": "markdown", ".txt": "text", ".sql": "sql",
	".sh": "bash", ".ps1": "powershell", ".r": "r", ".m": "matlab", ".pl": "perl",
	".lua": "lua", ".dart": "dart", ".vb": "vb", ".fs": "fsharp",
}

var (
	pythonFunctions = regexp.MustCompile(`def\s+(\w+)\s*\(`)
	pythonClasses   = regexp.MustCompile(`class\s+(\w+)\s*[:\(]`)
	pythonImports   = regexp.MustCompile(`(?:from\s+[\w.]+\s+import|import\s+[\w.]+)`)

	jsFunctions = regexp.MustCompile(`(?:function\s+(\w+)|const\s+(\w+)\s*=\s*(?:\([^)]*\)\s*)?=>)`)
	jsClasses   = regexp.MustCompile(`class\s+(\w+)`)
	jsImports   = regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`)

	javaFunctions = regexp.MustCompile(`(?:public|private|protected)\s+\w+\s+(\w+)\s*\([^)]*\)`)
	javaClasses   = regexp.MustCompile(`class\s+(\w+)`)
	javaImports   = regexp.MustCompile(`import\s+([^;]+);`)

	defKeyword      = regexp.MustCompile(`def\s+\w+`)
	functionKeyword = regexp.MustCompile(`function\s+\w+`)
	branchKeyword   = regexp.MustCompile(`(for|while|if)\s*\(`)
)

// DetectLanguage resolves a language from the file extension, falling back
// to a fixed-priority set of content heuristics, then "unknown".
func DetectLanguage(path, content string) string {
	if path == "" {
		return "unknown"
	}
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	if content == "" {
		return "unknown"
	}
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "import ") && (strings.Contains(lower, "def ") || strings.Contains(lower, "class ")):
		return "python"
	case (strings.Contains(lower, "function") || strings.Contains(lower, "const ")) &&
		(strings.Contains(content, "=>") || strings.Contains(lower, "export")):
		return "javascript"
	case strings.Contains(lower, "<?php"):
		return "php"
	case strings.Contains(lower, "public class") || strings.Contains(lower, "import java"):
		return "java"
	case strings.Contains(lower, "#include") && (strings.Contains(lower, "int main") || strings.Contains(lower, "cout")):
		return "cpp"
	case strings.Contains(lower, "using system"):
		return "csharp"
	}
	return "unknown"
}

// AnalyzeFile profiles one file: language, size, extracted declarations,
// complexity bucket and improvement suggestions.
func AnalyzeFile(path, content string) FileAnalysis {
	a := FileAnalysis{
		Language:   DetectLanguage(path, content),
		Lines:      len(strings.Split(content, "\n")),
		Characters: len(content),
	}

	switch a.Language {
	case "python":
		a.Functions = captureAll(pythonFunctions, content)
		a.Classes = captureAll(pythonClasses, content)
		a.Imports = matchAll(pythonImports, content)
	case "javascript", "typescript":
		a.Functions = captureAll(jsFunctions, content)
		a.Classes = captureAll(jsClasses, content)
		a.Imports = captureAll(jsImports, content)
	case "java":
		a.Functions = captureAll(javaFunctions, content)
		a.Classes = captureAll(javaClasses, content)
		a.Imports = captureAll(javaImports, content)
	}

	a.Complexity = complexityBucket(content, a.Language)
	a.Suggestions = suggestions(a)
	return a
}

// complexityBucket scores functions + branches + lines/50 into one of the
// three fixed buckets.
func complexityBucket(content, language string) string {
	lines := len(strings.Split(content, "\n"))
	fnPattern := functionKeyword
	if language == "python" {
		fnPattern = defKeyword
	}
	score := len(fnPattern.FindAllString(content, -1)) +
		len(branchKeyword.FindAllString(content, -1)) +
		lines/50
	switch {
	case score < 5:
		return ComplexitySimple
	case score < 15:
		return ComplexityModerate
	default:
		return ComplexityComplex
	}
}

func suggestions(a FileAnalysis) []string {
	var out []string
	if a.Lines > 300 {
		out = append(out, "Consider breaking this file into smaller modules")
	}
	if len(a.Functions) > 15 {
		out = append(out, "This file has many functions - consider splitting into multiple files")
	}
	if a.Complexity == ComplexityComplex {
		out = append(out, "Consider refactoring for better maintainability")
	}
	if len(a.Classes) == 0 && len(a.Functions) > 5 {
		out = append(out, "Consider organizing functions into classes")
	}
	return out
}

// captureAll returns every non-empty capture group match.
func captureAll(re *regexp.Regexp, content string) []string {
	var out []string
	for _, groups := range re.FindAllStringSubmatch(content, -1) {
		for _, g := range groups[1:] {
			if g != "" {
				out = append(out, g)
			}
		}
	}
	return out
}

// matchAll returns every whole-pattern match.
func matchAll(re *regexp.Regexp, content string) []string {
	return re.FindAllString(content, -1)
}
