// Package langdetect labels code blocks with a language, either from the
// block's info string or by guessing from its content with go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined.
const Unknown = "text"

// Source tells how a language was determined.
type Source string

const (
	SourceInfo       Source = "info"
	SourceShebang    Source = "shebang"
	SourceModeline   Source = "modeline"
	SourceSignature  Source = "signature"
	SourceClassifier Source = "classifier"
	SourceNone       Source = "none"
)

// Guess is a detected language and how it was found.
type Guess struct {
	Language string
	Source   Source
}

// classifierCandidates bounds the classifier to languages commonly fenced
// in Markdown.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// ForBlock labels a code block. A non-empty info string wins; its first
// word is resolved through the go-enry alias table. Otherwise the content
// is guessed with Detect.
func ForBlock(info string, content []byte) Guess {
	if word, _, _ := strings.Cut(strings.TrimSpace(info), " "); word != "" {
		if lang, ok := enry.GetLanguageByAlias(word); ok {
			return Guess{Language: normalize(lang), Source: SourceInfo}
		}
		return Guess{Language: strings.ToLower(word), Source: SourceInfo}
	}
	return Detect(content)
}

// Detect guesses the language of a code snippet. The shebang and modeline
// are tried first, then a table of signatures, then the go-enry classifier.
func Detect(content []byte) Guess {
	if len(bytes.TrimSpace(content)) == 0 {
		return Guess{Language: Unknown, Source: SourceNone}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Guess{Language: normalize(lang), Source: SourceShebang}
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return Guess{Language: normalize(lang), Source: SourceModeline}
	}
	if lang := matchSignature(content); lang != "" {
		return Guess{Language: lang, Source: SourceSignature}
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Guess{Language: normalize(lang), Source: SourceClassifier}
	}

	return Guess{Language: Unknown, Source: SourceNone}
}

// snippet is the views of a code block the signatures look at.
type snippet struct {
	raw     []byte
	trimmed []byte
	text    string
	upper   string
}

type signature struct {
	lang    string
	matches func(s snippet) bool
}

// signatures are checked in order; earlier entries are more specific.
var signatures = []signature{
	{"go", func(s snippet) bool { return bytes.HasPrefix(s.trimmed, []byte("package ")) }},
	{"python", isPython},
	{"html", func(s snippet) bool {
		return containsAny(strings.ToLower(string(s.trimmed)), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(s snippet) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{"dockerfile", func(s snippet) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
			(strings.Contains(s.text, "\nFROM ") && strings.Contains(s.text, "\nRUN ")) ||
			(strings.Contains(s.text, "WORKDIR ") && strings.Contains(s.text, "COPY "))
	}},
	{"sql", func(s snippet) bool {
		head := strings.TrimSpace(s.upper)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(head, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s snippet) bool { return containsAny(s.text, "fn main()", "println!", "let mut ") }},
	{"javascript", func(s snippet) bool { return containsAny(s.text, "=>", "const ", "let ", "console.log") }},
	{"yaml", isYAML},
}

func matchSignature(content []byte) string {
	s := snippet{
		raw:     content,
		trimmed: bytes.TrimSpace(content),
		text:    string(content),
		upper:   strings.ToUpper(string(content)),
	}
	for _, sig := range signatures {
		if sig.matches(s) {
			return sig.lang
		}
	}
	return ""
}

func isPython(s snippet) bool {
	switch {
	case strings.Contains(s.text, "def ") && strings.Contains(s.text, "):"):
		return true
	case strings.Contains(s.text, "__name__"), strings.Contains(s.text, "__main__"):
		return true
	case strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import ("):
		return strings.Contains(s.text, "from ") || strings.HasPrefix(strings.TrimSpace(s.text), "import ")
	}
	return false
}

// isYAML counts "key: value" lines and root list items.
func isYAML(s snippet) bool {
	keys := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	return keys >= 2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
