// Package annotation extracts property declarations from schema text.
//
// Schema text is a documentation-style block attached to a class:
//
//	@property int|string        $id
//	@property string[]          $tags
//	@enum     ["one","two"][]   $tags
//	@enum     Colors            $color
//	@options  SchemaOptional,StrictNumeric
//
// The parser only extracts the raw declarations; type tags and enum specs are
// interpreted by the schema and enum packages. Sources decide where the text of
// a class comes from: a static map, a Go type that describes itself, or a YAML file.
package annotation
