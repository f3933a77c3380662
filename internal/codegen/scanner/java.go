package scanner

import (
	"fmt"
	"strings"
)

// javaFile is the raw, unresolved view of one compilation unit.
type javaFile struct {
	path      string
	pkg       string
	imports   map[string]string // simple name -> qualified
	wildcards []string          // on-demand imported packages
	classes   []*javaClass
}

type javaClass struct {
	name        string
	qualified   string
	line        int
	kind        string // class, interface, enum, record, @interface
	supertypes  []string
	annotations []annotation
	fields      []javaField
	outer       *javaClass
	file        *javaFile
}

type javaField struct {
	name        string
	typeText    string
	line        int
	static      bool
	final       bool
	init        []token
	annotations []annotation
}

type annotation struct {
	name string
	args map[string][]token // single-element form is stored under "value"
	line int
}

// simpleName drops any qualifier from the annotation name.
func (a annotation) simpleName() string {
	if i := strings.LastIndexByte(a.name, '.'); i >= 0 {
		return a.name[i+1:]
	}
	return a.name
}

var modifiers = map[string]bool{
	"public": true, "protected": true, "private": true, "static": true,
	"final": true, "abstract": true, "transient": true, "volatile": true,
	"synchronized": true, "native": true, "strictfp": true, "default": true,
	"sealed": true,
}

var typeKeywords = map[string]bool{
	"class": true, "interface": true, "enum": true, "record": true,
}

type javaParser struct {
	toks []token
	pos  int
	file *javaFile
}

// parseJava parses the declaration structure of one Java source file.
func parseJava(path, src string) (*javaFile, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p := &javaParser{
		toks: toks,
		file: &javaFile{path: path, imports: make(map[string]string)},
	}
	if err := p.parseFile(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p.file, nil
}

func (p *javaParser) cur() token { return p.toks[p.pos] }

func (p *javaParser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *javaParser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *javaParser) expect(punct string) error {
	t := p.next()
	if !t.is(punct) {
		return fmt.Errorf("line %d: expected %q, found %q", t.line, punct, t.text)
	}
	return nil
}

func (p *javaParser) atTypeDecl() bool {
	t := p.cur()
	if t.kind == tokIdent && typeKeywords[t.text] {
		// "record" is contextual; require a following identifier.
		return t.text != "record" || p.peekAt(1).kind == tokIdent
	}
	return t.is("@") && p.peekAt(1).isIdent("interface")
}

func (p *javaParser) parseFile() error {
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			return nil
		case t.isIdent("package"):
			p.next()
			p.file.pkg = p.qualifiedName()
			if err := p.expect(";"); err != nil {
				return err
			}
		case t.isIdent("import"):
			p.next()
			static := false
			if p.cur().isIdent("static") {
				p.next()
				static = true
			}
			name := p.qualifiedName()
			if p.cur().is(".") && p.peekAt(1).is("*") {
				p.pos += 2
				if !static {
					p.file.wildcards = append(p.file.wildcards, name)
				}
			} else if !static {
				p.file.imports[lastSegment(name)] = name
			}
			if err := p.expect(";"); err != nil {
				return err
			}
		case t.is(";"):
			p.next()
		default:
			annots, _, _, err := p.memberPrefix()
			if err != nil {
				return err
			}
			if !p.atTypeDecl() {
				if len(annots) == 0 {
					p.next()
				}
				continue
			}
			if err := p.typeDecl(annots, nil); err != nil {
				return err
			}
		}
	}
}

func (p *javaParser) qualifiedName() string {
	var parts []string
	for p.cur().kind == tokIdent {
		parts = append(parts, p.next().text)
		if !p.cur().is(".") || p.peekAt(1).kind != tokIdent {
			break
		}
		p.next()
	}
	return strings.Join(parts, ".")
}

func (p *javaParser) skipModifiers() (static, final bool) {
	for {
		t := p.cur()
		if t.kind != tokIdent || !modifiers[t.text] {
			// non-sealed lexes as three tokens
			if t.isIdent("non") && p.peekAt(1).is("-") && p.peekAt(2).isIdent("sealed") {
				p.pos += 3
				continue
			}
			return
		}
		static = static || t.text == "static"
		final = final || t.text == "final"
		p.next()
	}
}

// memberPrefix reads interleaved annotations and modifiers.
func (p *javaParser) memberPrefix() (annots []annotation, static, final bool, err error) {
	for {
		start := p.pos
		a, err := p.annotations()
		if err != nil {
			return nil, false, false, err
		}
		annots = append(annots, a...)
		s, f := p.skipModifiers()
		static = static || s
		final = final || f
		if p.pos == start {
			return annots, static, final, nil
		}
	}
}

// annotations reads consecutive annotations, stopping before "@interface".
func (p *javaParser) annotations() ([]annotation, error) {
	var out []annotation
	for p.cur().is("@") && !p.peekAt(1).isIdent("interface") {
		line := p.next().line
		a := annotation{name: p.qualifiedName(), args: map[string][]token{}, line: line}
		if p.cur().is("(") {
			if err := p.annotationArgs(&a); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (p *javaParser) annotationArgs(a *annotation) error {
	p.next() // (
	for !p.cur().is(")") {
		if p.cur().kind == tokEOF {
			return fmt.Errorf("line %d: unterminated annotation @%s", a.line, a.name)
		}
		key := "value"
		if p.cur().kind == tokIdent && p.peekAt(1).is("=") {
			key = p.next().text
			p.next()
		}
		a.args[key] = p.expression(",", ")")
		if p.cur().is(",") {
			p.next()
		}
	}
	p.next() // )
	return nil
}

// expression collects tokens up to one of the stop puncts at nesting depth 0.
func (p *javaParser) expression(stops ...string) []token {
	var out []token
	depth := 0
	for {
		t := p.cur()
		if t.kind == tokEOF {
			return out
		}
		if depth == 0 {
			for _, s := range stops {
				if t.is(s) {
					return out
				}
			}
		}
		switch {
		case t.is("("), t.is("{"), t.is("["):
			depth++
		case t.is(")"), t.is("}"), t.is("]"):
			depth--
		}
		out = append(out, p.next())
	}
}

// initializer collects a field initializer. A ',' at depth 0 only ends it
// when the next declarator follows, so commas between type arguments
// (new HashMap<K, V>(), Collections.<K, V>emptyMap()) stay inside.
func (p *javaParser) initializer() []token {
	var out []token
	for {
		out = append(out, p.expression(",", ";")...)
		if !p.cur().is(",") || p.declaratorAt(1) {
			return out
		}
		out = append(out, p.next())
	}
}

// declaratorAt reports whether a variable declarator (name, optional [],
// then '=', ',' or ';') starts at offset i.
func (p *javaParser) declaratorAt(i int) bool {
	if p.peekAt(i).kind != tokIdent {
		return false
	}
	i++
	for p.peekAt(i).is("[") && p.peekAt(i+1).is("]") {
		i += 2
	}
	next := p.peekAt(i)
	return next.is("=") || next.is(",") || next.is(";")
}

func (p *javaParser) skipBalanced(open, close string) error {
	start := p.cur()
	if !start.is(open) {
		return fmt.Errorf("line %d: expected %q, found %q", start.line, open, start.text)
	}
	depth := 0
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return fmt.Errorf("line %d: unbalanced %q", start.line, open)
		case t.is(open):
			depth++
		case t.is(close):
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

func (p *javaParser) typeDecl(annots []annotation, outer *javaClass) error {
	kw := p.next()
	kind := kw.text
	if kw.is("@") {
		p.next()
		kind = "@interface"
	}
	nameTok := p.next()
	if nameTok.kind != tokIdent {
		return fmt.Errorf("line %d: expected type name after %s", nameTok.line, kind)
	}
	c := &javaClass{
		name:        nameTok.text,
		line:        kw.line,
		kind:        kind,
		annotations: annots,
		outer:       outer,
		file:        p.file,
	}
	switch {
	case outer != nil:
		c.qualified = outer.qualified + "." + c.name
	case p.file.pkg != "":
		c.qualified = p.file.pkg + "." + c.name
	default:
		c.qualified = c.name
	}
	p.file.classes = append(p.file.classes, c)

	if p.cur().is("<") {
		if err := p.skipBalanced("<", ">"); err != nil {
			return err
		}
	}
	if kind == "record" && p.cur().is("(") {
		if err := p.skipBalanced("(", ")"); err != nil {
			return err
		}
	}
	for !p.cur().is("{") {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			return fmt.Errorf("line %d: missing body for %s", c.line, c.name)
		case t.isIdent("extends"), t.isIdent("implements"):
			p.next()
			for {
				if _, err := p.annotations(); err != nil {
					return err
				}
				c.supertypes = append(c.supertypes, p.typeText())
				if !p.cur().is(",") {
					break
				}
				p.next()
			}
		default:
			// permits clauses and anything else before the body
			p.next()
		}
	}
	return p.classBody(c)
}

// typeText reads a type and returns it as space-joined source text.
func (p *javaParser) typeText() string {
	var parts []string
	for p.cur().kind == tokIdent {
		parts = append(parts, p.next().text)
		if !p.cur().is(".") || p.peekAt(1).kind != tokIdent {
			break
		}
		parts = append(parts, p.next().text)
	}
	if p.cur().is("<") {
		depth := 0
		for {
			t := p.next()
			if t.kind == tokEOF {
				break
			}
			if t.is("@") {
				p.qualifiedName()
				continue
			}
			parts = append(parts, t.text)
			if t.is("<") {
				depth++
			} else if t.is(">") {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	for {
		if p.cur().is("[") && p.peekAt(1).is("]") {
			parts = append(parts, "[", "]")
			p.pos += 2
			continue
		}
		if p.cur().is("...") {
			parts = append(parts, p.next().text)
			continue
		}
		break
	}
	return strings.Join(parts, " ")
}

func (p *javaParser) classBody(c *javaClass) error {
	if err := p.expect("{"); err != nil {
		return err
	}
	if c.kind == "enum" {
		p.expression(";", "}")
		if p.cur().is(";") {
			p.next()
		}
	}
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			return fmt.Errorf("line %d: unterminated body of %s", c.line, c.name)
		case t.is("}"):
			p.next()
			return nil
		case t.is(";"):
			p.next()
			continue
		}

		annots, static, final, err := p.memberPrefix()
		if err != nil {
			return err
		}
		if p.atTypeDecl() {
			if err := p.typeDecl(annots, c); err != nil {
				return err
			}
			continue
		}
		if p.cur().is("{") {
			if err := p.skipBalanced("{", "}"); err != nil {
				return err
			}
			continue
		}
		if p.cur().is("<") {
			if err := p.skipBalanced("<", ">"); err != nil {
				return err
			}
		}

		line := p.cur().line
		typ := p.typeText()
		if typ == "" {
			// Unknown construct; skip one token so the loop makes progress.
			p.next()
			continue
		}
		if p.cur().is("(") {
			// constructor
			if err := p.skipMember(); err != nil {
				return err
			}
			continue
		}
		nameTok := p.next()
		if nameTok.kind != tokIdent {
			continue
		}
		if p.cur().is("(") {
			if err := p.skipMember(); err != nil {
				return err
			}
			continue
		}

		for {
			f := javaField{name: nameTok.text, typeText: typ, line: line, static: static, final: final, annotations: annots}
			for p.cur().is("[") && p.peekAt(1).is("]") {
				f.typeText += " [ ]"
				p.pos += 2
			}
			if p.cur().is("=") {
				p.next()
				f.init = p.initializer()
			}
			c.fields = append(c.fields, f)
			if !p.cur().is(",") {
				break
			}
			p.next()
			nameTok = p.next()
			if nameTok.kind != tokIdent {
				break
			}
		}
		if p.cur().is(";") {
			p.next()
		}
	}
}

// skipMember skips a parameter list plus the following body or ';'.
func (p *javaParser) skipMember() error {
	if err := p.skipBalanced("(", ")"); err != nil {
		return err
	}
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			return nil
		case t.is(";"):
			p.next()
			return nil
		case t.is("{"):
			return p.skipBalanced("{", "}")
		case t.isIdent("default"):
			// annotation element default value
			p.next()
			p.expression(";")
		default:
			p.next()
		}
	}
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
