package templates

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"
)

// Engine selects how a template body is expanded.
type Engine int

const (
	// EngineSubstitute replaces $Name and ${Name} placeholders. Unknown
	// placeholders are left untouched and $$ renders a literal $.
	EngineSubstitute Engine = iota

	// EngineGo executes the body with text/template. Missing keys are errors.
	EngineGo
)

func (e Engine) String() string {
	switch e {
	case EngineSubstitute:
		return "substitute"
	case EngineGo:
		return "go"
	default:
		return "unknown"
	}
}

var placeholderRe = regexp.MustCompile(`\$(?:\$|\{([A-Za-z_][A-Za-z0-9_]*)\}|([A-Za-z_][A-Za-z0-9_]*))`)

// substitute performs safe placeholder substitution.
func substitute(body string, ctx Context) string {
	return placeholderRe.ReplaceAllStringFunc(body, func(m string) string {
		if m == "$$" {
			return "$"
		}
		sub := placeholderRe.FindStringSubmatch(m)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		v, ok := ctx[name]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}

// parseGo compiles a text/template body.
func parseGo(name, body string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return tmpl, nil
}

func executeGo(tmpl *template.Template, ctx Context) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(ctx)); err != nil {
		return "", fmt.Errorf("executing template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
