package templates

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidateIdentifier checks that name can be used as a Python identifier:
// a letter or underscore followed by letters, digits or underscores, and not
// a keyword.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return fmt.Errorf("invalid identifier %q: must start with a letter or underscore and contain only letters, digits, and underscores", name)
		}
	}

	if pythonKeywords[name] {
		return fmt.Errorf("invalid identifier %q: cannot use reserved word", name)
	}

	return nil
}

// ValidateProjectName checks a project directory name. Project names are
// more permissive than identifiers and may contain hyphens.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("invalid project name %q: contains invalid character %q", name, r)
		}
	}

	if first := []rune(name)[0]; !unicode.IsLetter(first) {
		return fmt.Errorf("invalid project name %q: must start with a letter", name)
	}

	return nil
}

// ClassName returns name with its first letter upper-cased and the rest
// lower-cased ("post" -> "Post", "blog_post" -> "Blog_post").
func ClassName(name string) string {
	lower := cases.Lower(language.Und).String(name)
	first, size := utf8.DecodeRuneInString(lower)
	if first == utf8.RuneError {
		return lower
	}
	return cases.Upper(language.Und).String(string(first)) + lower[size:]
}

var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}
