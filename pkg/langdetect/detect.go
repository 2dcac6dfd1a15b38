// Package langdetect guesses a Markdown fence tag for a deindented snippet.
// It uses go-enry for shebangs, file extensions and its Bayesian classifier,
// with a few cheap textual hints checked before the classifier runs.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined with confidence.
const Text = "text"

// classifierCandidates limits the classifier to languages that commonly
// show up as pasted snippets.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Dockerfile",
}

// hint is a textual pattern that identifies a language without the classifier.
type hint struct {
	lang  string
	match func(trimmed string) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var hints = []hint{
	{"go", func(s string) bool { return strings.HasPrefix(s, "package ") }},
	{"python", func(s string) bool {
		return strings.Contains(s, "def ") && strings.Contains(s, "):") ||
			strings.Contains(s, "__name__")
	}},
	{"html", func(s string) bool {
		lower := strings.ToLower(s)
		return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
	}},
	{"json", func(s string) bool {
		return (strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")) && strings.Contains(s, `"`) &&
			!strings.Contains(s, ";")
	}},
	{"dockerfile", func(s string) bool { return strings.HasPrefix(s, "FROM ") }},
	{"sql", func(s string) bool {
		upper := strings.ToUpper(s)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s string) bool { return strings.Contains(s, "fn main()") || strings.Contains(s, "println!") }},
}

// Detect returns a fence tag for content, or Text if unsure.
func Detect(content []byte) string {
	return DetectFile("", content)
}

// DetectFile is like Detect but also considers the file name, which wins
// over content heuristics when go-enry maps its extension unambiguously.
func DetectFile(path string, content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 && path == "" {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if path != "" {
		if lang, safe := enry.GetLanguageByExtension(path); safe {
			return normalize(lang)
		}
	}

	if len(trimmed) == 0 {
		return Text
	}

	s := string(trimmed)
	for _, h := range hints {
		if h.match(s) {
			return h.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Text
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
