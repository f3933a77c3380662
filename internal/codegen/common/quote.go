package common

import (
	"fmt"
	"strings"
)

// QuoteJava renders s as a Java string literal.
func QuoteJava(s string) string {
	return quote(s, false)
}

// QuoteKotlin renders s as a Kotlin string literal; '$' is escaped so it
// is never read as a template.
func QuoteKotlin(s string) string {
	return quote(s, true)
}

func quote(s string, escapeDollar bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '$':
			if escapeDollar {
				b.WriteString(`\$`)
			} else {
				b.WriteRune(r)
			}
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
