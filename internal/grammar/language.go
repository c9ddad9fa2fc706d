package grammar

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no valid language tag is supplied
const DefaultLanguage = "en-US"

var (
	formalCategories  = []string{"STYLE", "GRAMMAR", "TYPOS", "PUNCTUATION"}
	defaultCategories = []string{"GRAMMAR", "TYPOS"}
)

// Categories returns the rule categories enabled for a style hint. Formal
// registers also enable style and punctuation checks.
func Categories(style string) []string {
	var src []string
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "formal", "academic", "business":
		src = formalCategories
	default:
		src = defaultCategories
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// NormalizeLanguage canonicalizes a BCP 47 tag ("en-us" -> "en-US").
// "auto" is passed through for services that detect the language; empty
// or unparsable tags become fallback.
func NormalizeLanguage(tag, fallback string) string {
	if fallback == "" {
		fallback = DefaultLanguage
	}

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fallback
	}
	if strings.EqualFold(tag, "auto") {
		return "auto"
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return fallback
	}
	return parsed.String()
}
