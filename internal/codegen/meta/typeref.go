package meta

import (
	"fmt"
	"strings"
	"unicode"
)

// TypeRef is a parsed declared type: a name with optional generic arguments
// and array dimensions. Wildcard arguments have Name "?" and carry their
// bound in Args[0].
type TypeRef struct {
	Name  string
	Args  []TypeRef
	Dims  int
	Bound string // "extends" or "super" for bounded wildcards
}

var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"char":    true,
	"float":   true,
	"double":  true,
}

// IsPrimitiveName reports whether name is a language primitive keyword.
func IsPrimitiveName(name string) bool { return primitives[name] }

// IsPrimitive reports whether the reference is a non-array primitive.
func (t TypeRef) IsPrimitive() bool { return t.Dims == 0 && primitives[t.Name] }

func (t TypeRef) IsWildcard() bool { return t.Name == "?" }

// Erased drops generic arguments: "java.util.List<X>[]" -> "java.util.List[]".
func (t TypeRef) Erased() string {
	return t.Name + strings.Repeat("[]", t.Dims)
}

func (t TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t TypeRef) write(b *strings.Builder) {
	if t.IsWildcard() {
		b.WriteString("?")
		if t.Bound != "" && len(t.Args) > 0 {
			b.WriteString(" " + t.Bound + " ")
			t.Args[0].write(b)
		}
		return
	}
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b)
		}
		b.WriteByte('>')
	}
	b.WriteString(strings.Repeat("[]", t.Dims))
}

// MapNames returns a copy with every type name (including generic
// arguments) replaced by fn(name). Wildcards and primitives are kept.
func (t TypeRef) MapNames(fn func(string) string) TypeRef {
	out := TypeRef{Name: t.Name, Dims: t.Dims, Bound: t.Bound}
	if !t.IsWildcard() && !primitives[t.Name] {
		out.Name = fn(t.Name)
	}
	if len(t.Args) > 0 {
		out.Args = make([]TypeRef, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = a.MapNames(fn)
		}
	}
	return out
}

// Walk calls fn for every non-wildcard, non-primitive name in the reference.
func (t TypeRef) Walk(fn func(name string)) {
	if !t.IsWildcard() && !primitives[t.Name] {
		fn(t.Name)
	}
	for _, a := range t.Args {
		a.Walk(fn)
	}
}

// ParseTypeRef parses declared type text such as
// "java.util.Map<String, ? extends Foo>[]" or "int...".
func ParseTypeRef(s string) (TypeRef, error) {
	p := &typeParser{src: s}
	t, err := p.parseType()
	if err != nil {
		return TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, fmt.Errorf("parse type %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// MustParseTypeRef is ParseTypeRef for literals known to be valid.
func MustParseTypeRef(s string) TypeRef {
	t, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '_' || r == '$' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) || r >= 0x80 {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) parseType() (TypeRef, error) {
	if p.peek() == '?' {
		p.pos++
		w := TypeRef{Name: "?"}
		save := p.pos
		kw := p.ident()
		if kw == "extends" || kw == "super" {
			bound, err := p.parseType()
			if err != nil {
				return TypeRef{}, err
			}
			w.Bound = kw
			w.Args = []TypeRef{bound}
		} else {
			p.pos = save
		}
		return w, nil
	}

	var parts []string
	for {
		id := p.ident()
		if id == "" {
			return TypeRef{}, fmt.Errorf("parse type %q: expected identifier at offset %d", p.src, p.pos)
		}
		parts = append(parts, id)
		if p.peek() != '.' || strings.HasPrefix(p.src[p.pos:], "...") {
			break
		}
		p.pos++
	}
	t := TypeRef{Name: strings.Join(parts, ".")}

	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return TypeRef{}, err
			}
			t.Args = append(t.Args, arg)
			c := p.peek()
			if c == ',' {
				p.pos++
				continue
			}
			if c == '>' {
				p.pos++
				break
			}
			return TypeRef{}, fmt.Errorf("parse type %q: unterminated type arguments", p.src)
		}
	}

	for {
		c := p.peek()
		if c == '[' {
			p.pos++
			if p.peek() != ']' {
				return TypeRef{}, fmt.Errorf("parse type %q: expected ']' at offset %d", p.src, p.pos)
			}
			p.pos++
			t.Dims++
			continue
		}
		if c == '.' && strings.HasPrefix(p.src[p.pos:], "...") {
			p.pos += 3
			t.Dims++
			continue
		}
		break
	}
	return t, nil
}
