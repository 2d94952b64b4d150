package grammar

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// guessCandidates narrows the enry classifier to languages likely to appear
// in blog posts.
var guessCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile", "TeX",
}

// patternDetector returns a fence tag when content is unmistakably one language.
type patternDetector func(content, trimmed []byte) string

var patternDetectors = []patternDetector{
	func(_, trimmed []byte) string {
		if bytes.HasPrefix(trimmed, []byte("package ")) {
			return "go"
		}
		return ""
	},
	func(content, _ []byte) string {
		text := string(content)
		if strings.Contains(text, "def ") && strings.Contains(text, "):") {
			return "python"
		}
		if strings.Contains(text, "__name__") {
			return "python"
		}
		return ""
	},
	func(_, trimmed []byte) string {
		lower := bytes.ToLower(trimmed)
		if bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html")) {
			return "html"
		}
		return ""
	},
	func(_, trimmed []byte) string {
		if (bytes.HasPrefix(trimmed, []byte("{")) && bytes.HasSuffix(trimmed, []byte("}")) ||
			bytes.HasPrefix(trimmed, []byte("[")) && bytes.HasSuffix(trimmed, []byte("]"))) &&
			bytes.Contains(trimmed, []byte(`":`)) {
			return "json"
		}
		return ""
	},
	func(_, trimmed []byte) string {
		upper := strings.ToUpper(string(trimmed))
		for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, keyword) {
				return "sql"
			}
		}
		return ""
	},
	func(content, _ []byte) string {
		text := string(content)
		if strings.Contains(text, "fn main()") || strings.Contains(text, "println!") || strings.Contains(text, "let mut ") {
			return "rust"
		}
		return ""
	},
	func(content, _ []byte) string {
		text := string(content)
		if strings.Contains(text, "console.log") || strings.Contains(text, "=>") {
			return "javascript"
		}
		return ""
	},
}

// Guess infers a fence tag for untagged code. It returns "" when no language
// can be determined with confidence.
func Guess(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return fenceTag(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, detect := range patternDetectors {
		if lang := detect(content, trimmed); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, guessCandidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return ""
}

// fenceTag converts a linguist language name to the tag an author would write.
func fenceTag(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	}
	return strings.ToLower(lang)
}
