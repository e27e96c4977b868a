package annotation

import (
	"regexp"
	"strings"
)

var (
	optionsPattern  = regexp.MustCompile(`@options[ \t]*([\w, \t|]*)`)
	propertyPattern = regexp.MustCompile(`(?m)@property[ \t]*([\w\[\]|\\.]*)[ \t]*\$(\w+)`)
	enumPattern     = regexp.MustCompile(`(?m)@enum[ \t]*(\[.*\]|[\w\[\]|\\.]+)[ \t]*\$(\w+)`)
)

// Declarations holds the raw declarations found in one class's schema text.
type Declarations struct {
	// Options lists the names from the first @options tag.
	Options []string
	// Types maps a property to its raw type alternatives, e.g. "int|string[]".
	// An empty string declares the property without restricting its type.
	Types map[string]string
	// Enums maps a property to its raw enum spec, e.g. `["a","b"][]` or "Colors".
	Enums map[string]string
	// Order lists every declared property once, in order of first appearance.
	Order []string
}

// Empty reports whether the text declared no property at all.
func (d *Declarations) Empty() bool {
	return len(d.Types) == 0 && len(d.Enums) == 0
}

// Parser converts schema text into Declarations.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts options, property types and enums from text.
// Parsing never fails: lines that do not match a tag form are ignored, and
// malformed type tags or enum specs are reported when the schema is compiled.
func (p *Parser) Parse(text string) *Declarations {
	decl := &Declarations{
		Types: make(map[string]string),
		Enums: make(map[string]string),
	}

	if m := optionsPattern.FindStringSubmatch(text); m != nil {
		decl.Options = splitOptions(m[1])
	}

	seen := make(map[string]bool)
	note := func(name string) {
		if !seen[name] {
			seen[name] = true
			decl.Order = append(decl.Order, name)
		}
	}

	for _, m := range propertyPattern.FindAllStringSubmatch(text, -1) {
		decl.Types[m[2]] = m[1]
		note(m[2])
	}
	for _, m := range enumPattern.FindAllStringSubmatch(text, -1) {
		decl.Enums[m[2]] = strings.TrimSpace(m[1])
		note(m[2])
	}

	return decl
}

// Parse is a shorthand for NewParser().Parse(text).
func Parse(text string) *Declarations {
	return NewParser().Parse(text)
}

func splitOptions(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
