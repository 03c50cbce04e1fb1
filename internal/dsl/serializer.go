package dsl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

// Serialize writes instances in canonical DSL form. Compiling the result
// yields a structurally equal instance list. Values outside the DSL value
// space are rejected with a core.ContractError.
func Serialize(instances []core.BlockInstance) (string, error) {
	return write(instances, nil)
}

// Format compiles source and re-emits it in canonical form. Comments are
// kept with the declaration or entry they precede or end the line of.
func Format(source string) (string, []Error) {
	res, notes := compile(source, true)
	if !res.OK() {
		return "", res.Errors
	}
	out, err := write(res.Instances, notes)
	if err != nil {
		// compiled instances are always representable
		return "", []Error{{Line: 1, Col: 1, Msg: err.Error()}}
	}
	return out, nil
}

func write(instances []core.BlockInstance, notes *docNotes) (string, error) {
	var b strings.Builder

	for i, inst := range instances {
		if !IsIdentifier(inst.TypeID) {
			return "", fmt.Errorf("block %d: %w", i, core.NewInvalidTypeIDError(inst.TypeID))
		}
		dn := notes.decl(i)

		if i > 0 {
			b.WriteString("\n")
		}
		writeComments(&b, dn.head.leading, "", true)
		if dn.gap && len(dn.head.leading) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(inst.TypeID)

		if len(inst.Config) == 0 && len(dn.inner) == 0 {
			writeTrailing(&b, strings.TrimSpace(dn.head.trailing+" "+dn.closing))
			b.WriteString("\n")
			continue
		}

		keys := make([]string, 0, len(inst.Config))
		for k := range inst.Config {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		b.WriteString(" {")
		writeTrailing(&b, dn.head.trailing)
		b.WriteString("\n")
		for _, k := range keys {
			val, err := formatValue(inst.Config[k])
			if err != nil {
				return "", fmt.Errorf("block %d (%s), key %q: %w", i, inst.TypeID, k, err)
			}
			n := dn.entries[k]
			if n == nil {
				n = &note{}
			}
			writeComments(&b, n.leading, "  ", false)
			fmt.Fprintf(&b, "  %s: %s", formatKey(k), val)
			writeTrailing(&b, n.trailing)
			b.WriteString("\n")
		}
		writeComments(&b, dn.inner, "  ", false)
		b.WriteString("}")
		writeTrailing(&b, dn.closing)
		b.WriteString("\n")
	}

	if notes != nil && len(notes.tail) > 0 {
		if len(instances) > 0 {
			b.WriteString("\n")
		}
		writeComments(&b, notes.tail, "", true)
	}

	return b.String(), nil
}

// writeComments emits one comment per line. Top-level comments keep a
// single empty line where the source had one or more.
func writeComments(b *strings.Builder, cs []comment, indent string, keepBlank bool) {
	for i, c := range cs {
		if keepBlank && i > 0 && c.blank {
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString(c.text)
		b.WriteString("\n")
	}
}

func writeTrailing(b *strings.Builder, text string) {
	if text != "" {
		b.WriteString(" ")
		b.WriteString(text)
	}
}

func formatKey(k string) string {
	if IsIdentifier(k) {
		return k
	}
	return strconv.Quote(k)
}

func formatValue(v any) (string, error) {
	n, err := core.NormalizeValue(v)
	if err != nil {
		return "", err
	}
	switch val := n.(type) {
	case string:
		return strconv.Quote(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return formatFloat(val), nil
	}
	return "", core.NewUnrepresentableValueError(fmt.Sprintf("unsupported value type %T", v))
}

// formatFloat keeps a '.' or exponent so the value re-parses as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
