package enum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/yannn/strictdata/internal/values"
)

var identPattern = regexp.MustCompile(`^\\?[A-Za-z_][A-Za-z0-9_]*(?:[\\.][A-Za-z_][A-Za-z0-9_]*)*$`)

// Spec is a parsed, not yet resolved, enum declaration.
type Spec struct {
	// Raw is the spec text as written.
	Raw string
	// Literal holds the inline values. Nil when Provider is set.
	Literal []any
	// Provider names the registered provider supplying the values.
	Provider string
	// IsArray is set by the trailing "[]" marker.
	IsArray bool
}

// ParseSpec parses raw enum spec text.
func ParseSpec(raw string) (Spec, error) {
	spec := Spec{Raw: raw}
	body := strings.TrimSpace(raw)

	if strings.HasSuffix(body, "[]") && body != "[]" {
		body = strings.TrimSuffix(body, "[]")
		spec.IsArray = true
	}

	switch {
	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]"):
		lit, err := parseLiteral(body)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid description of enum %s: %w", raw, err)
		}
		spec.Literal = lit
	case identPattern.MatchString(body):
		spec.Provider = NormalizeName(body)
	default:
		return Spec{}, fmt.Errorf("invalid enum %s", raw)
	}

	return spec, nil
}

// NormalizeName strips the leading namespace separator from a provider name.
func NormalizeName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), `\`)
}

func parseLiteral(body string) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after array")
	}

	out := make([]any, 0, len(raw))
	for i, v := range raw {
		switch v.(type) {
		case nil, string, bool, json.Number:
			out = append(out, values.Scalar(v))
		default:
			return nil, fmt.Errorf("element %d: expected scalar, got %T", i, v)
		}
	}
	return out, nil
}
