package gvariant

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// String renders the value in annotated GVariant text format, as dconf dump does:
// 'dark', true, 42, uint32 300, ['a', 'b'], @as [].
func (v Value) String() string {
	var sb strings.Builder
	v.print(&sb, true)
	return sb.String()
}

// print follows g_variant_print: annotate requests a type prefix where the text form
// alone would parse back as a different type.
func (v Value) print(sb *strings.Builder, annotate bool) {
	t := v.typ
	switch t.code {
	case 'b':
		sb.WriteString(strconv.FormatBool(v.data.(bool)))
	case 'y':
		if annotate {
			sb.WriteString("byte ")
		}
		fmt.Fprintf(sb, "0x%02x", v.data.(uint8))
	case 'n':
		annotated(sb, annotate, "int16 ", strconv.FormatInt(int64(v.data.(int16)), 10))
	case 'q':
		annotated(sb, annotate, "uint16 ", strconv.FormatUint(uint64(v.data.(uint16)), 10))
	case 'i':
		sb.WriteString(strconv.FormatInt(int64(v.data.(int32)), 10))
	case 'u':
		annotated(sb, annotate, "uint32 ", strconv.FormatUint(uint64(v.data.(uint32)), 10))
	case 'x':
		annotated(sb, annotate, "int64 ", strconv.FormatInt(v.data.(int64), 10))
	case 't':
		annotated(sb, annotate, "uint64 ", strconv.FormatUint(v.data.(uint64), 10))
	case 'h':
		annotated(sb, annotate, "handle ", strconv.FormatInt(int64(v.data.(int32)), 10))
	case 'd':
		sb.WriteString(formatDouble(v.data.(float64)))
	case 's':
		quote(sb, v.data.(string))
	case 'o':
		if annotate {
			sb.WriteString("objectpath ")
		}
		quote(sb, v.data.(string))
	case 'g':
		if annotate {
			sb.WriteString("signature ")
		}
		quote(sb, v.data.(string))
	case 'v':
		sb.WriteByte('<')
		v.data.(Value).print(sb, true)
		sb.WriteByte('>')
	case 'm':
		printMaybe(sb, v, annotate)
	case 'a':
		printArray(sb, v, annotate)
	case '(':
		items := v.data.([]Value)
		sb.WriteByte('(')
		for i, item := range items {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.print(sb, annotate)
		}
		if len(items) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case '{':
		items := v.data.([]Value)
		sb.WriteByte('{')
		items[0].print(sb, annotate)
		sb.WriteString(", ")
		items[1].print(sb, annotate)
		sb.WriteByte('}')
	}
}

func annotated(sb *strings.Builder, annotate bool, prefix, text string) {
	if annotate {
		sb.WriteString(prefix)
	}
	sb.WriteString(text)
}

func printMaybe(sb *strings.Builder, v Value, annotate bool) {
	child := v.data.(*Value)
	if child == nil {
		if annotate {
			sb.WriteString("@" + v.typ.String() + " ")
		}
		sb.WriteString("nothing")
		return
	}
	if child.typ.code == 'm' {
		sb.WriteString("just ")
	}
	child.print(sb, annotate)
}

func printArray(sb *strings.Builder, v Value, annotate bool) {
	items := v.data.([]Value)
	if len(items) == 0 {
		if annotate {
			sb.WriteString("@" + v.typ.String() + " ")
		}
		sb.WriteString("[]")
		return
	}

	if v.typ.elem.code == '{' {
		sb.WriteByte('{')
		for i, entry := range items {
			if i > 0 {
				sb.WriteString(", ")
			}
			kv := entry.data.([]Value)
			kv[0].print(sb, annotate && i == 0)
			sb.WriteString(": ")
			kv[1].print(sb, annotate && i == 0)
		}
		sb.WriteByte('}')
		return
	}

	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		item.print(sb, annotate && i == 0)
	}
	sb.WriteByte(']')
}

func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eINn") {
		s += ".0"
	}
	return s
}

// quote writes s as a GVariant string literal. Single quotes are preferred; double
// quotes are used when s contains a single quote but no double quote.
func quote(sb *strings.Builder, s string) {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	sb.WriteRune(q)
	for _, r := range s {
		switch r {
		case q, '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		default:
			switch {
			case unicode.IsPrint(r):
				sb.WriteRune(r)
			case r <= 0xffff:
				fmt.Fprintf(sb, `\u%04x`, r)
			default:
				fmt.Fprintf(sb, `\U%08x`, r)
			}
		}
	}
	sb.WriteRune(q)
}
