package domain

import (
	"sort"
	"strings"
)

// Option is a behavior toggle a class declares with the "@options" tag.
type Option uint8

const (
	// OptionSchemaOptional lets undeclared properties pass through unchecked.
	OptionSchemaOptional Option = 1 << iota
	// OptionStrictNumeric requires native numeric values for int and float types.
	OptionStrictNumeric
	// OptionLooseEnumMatch compares enum members numerically across numbers and numeric strings.
	OptionLooseEnumMatch
)

// optionNames maps every accepted spelling to its flag. The first two spellings
// of each flag are the historical names used in existing schema text.
var optionNames = map[string]Option{
	"PhpDocNotRequired":     OptionSchemaOptional,
	"SchemaOptional":        OptionSchemaOptional,
	"StrictNumberTypeCheck": OptionStrictNumeric,
	"StrictNumeric":         OptionStrictNumeric,
	"LooseEnumMatch":        OptionLooseEnumMatch,
}

var canonicalNames = map[Option]string{
	OptionSchemaOptional: "SchemaOptional",
	OptionStrictNumeric:  "StrictNumeric",
	OptionLooseEnumMatch: "LooseEnumMatch",
}

// Options is the set of flags declared by a class.
type Options uint8

// Has reports whether o contains opt.
func (o Options) Has(opt Option) bool {
	return o&Options(opt) != 0
}

// With returns o with opt added.
func (o Options) With(opt Option) Options {
	return o | Options(opt)
}

// Names returns the canonical names of the flags in o, sorted.
func (o Options) Names() []string {
	names := make([]string, 0, len(canonicalNames))
	for opt, name := range canonicalNames {
		if o.Has(opt) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (o Options) String() string {
	return strings.Join(o.Names(), ",")
}

// ParseOptions converts option names into a flag set.
// Names that are not recognized are returned separately so callers can report them.
func ParseOptions(names []string) (Options, []string) {
	var opts Options
	var unknown []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		opt, ok := optionNames[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		opts = opts.With(opt)
	}
	return opts, unknown
}
