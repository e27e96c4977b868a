package markdown

import (
	"fmt"
	"strings"

	"github.com/yannn/strictdata/pkg/schema"
)

// Class produces a markdown description of a class schema: a heading, its
// options and one table row per property in declaration order.
func Class(view schema.ClassView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", view.Name)

	if len(view.Options) > 0 {
		fmt.Fprintf(&sb, "Options: %s\n\n", codeList(view.Options))
	}
	if len(view.UnknownOptions) > 0 {
		fmt.Fprintf(&sb, "Ignored options: %s\n\n", codeList(view.UnknownOptions))
	}

	if len(view.Properties) == 0 {
		sb.WriteString("_No declared properties._\n")
		return sb.String()
	}

	sb.WriteString("| Property | Types | Enum |\n")
	sb.WriteString("|---|---|---|\n")
	for _, p := range view.Properties {
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", p.Name, types(p.Types), enumCell(p.Enum))
	}
	return sb.String()
}

func types(ts []schema.Type) string {
	if len(ts) == 0 {
		return "_any_"
	}
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return codeList(names)
}

func enumCell(e *schema.EnumView) string {
	if e == nil {
		return ""
	}
	switch {
	case e.Error != "":
		return "error: " + escape(e.Error)
	case len(e.Values) > 0:
		vals := make([]string, len(e.Values))
		for i, v := range e.Values {
			vals[i] = fmt.Sprintf("%v", v)
		}
		cell := codeList(vals)
		if e.Array {
			cell += " (each)"
		}
		return cell
	}
	return "`" + escape(e.Spec) + "`"
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + escape(s) + "`"
	}
	return strings.Join(quoted, ", ")
}

// escape keeps pipes from splitting table cells.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
