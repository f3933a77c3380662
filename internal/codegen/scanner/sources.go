package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Alia5/launchgen/internal/codegen/generror"
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// Annotation simple names recognized on classes and fields.
const (
	RouteAnnotation  = "Route"
	InjectAnnotation = "Autowired"
)

var javaLang = map[string]bool{
	"Object": true, "String": true, "Boolean": true, "Byte": true, "Short": true,
	"Integer": true, "Long": true, "Character": true, "Float": true, "Double": true,
	"Number": true, "Enum": true, "CharSequence": true, "Comparable": true,
	"Cloneable": true, "Iterable": true, "Void": true, "Runnable": true,
}

// SourceScanner turns Java sources into a metadata table. Names are resolved
// against the scanned classes and the externally known types reported by
// Known (typically the built-in hierarchy).
type SourceScanner struct {
	Known func(name string) bool

	files   []*javaFile
	classes map[string]*javaClass
}

// ScanJavaSources parses every .java file under the given paths (files or
// directories, walked in lexical order) and builds the metadata table.
func ScanJavaSources(paths []string, known func(string) bool) (*meta.Table, error) {
	s := &SourceScanner{Known: known}
	for _, root := range paths {
		files, err := javaFiles(root)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			src, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("read source: %w", err)
			}
			if err := s.Add(f, string(src)); err != nil {
				return nil, err
			}
		}
	}
	return s.Table()
}

func javaFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat source path: %w", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".java") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}

// Add parses one compilation unit.
func (s *SourceScanner) Add(path, src string) error {
	f, err := parseJava(path, src)
	if err != nil {
		return err
	}
	if s.classes == nil {
		s.classes = make(map[string]*javaClass)
	}
	s.files = append(s.files, f)
	for _, c := range f.classes {
		s.classes[c.qualified] = c
	}
	return nil
}

// Table resolves everything added so far. Type declarations cover every
// scanned class; route declarations only the classes carrying @Route.
func (s *SourceScanner) Table() (*meta.Table, error) {
	table := &meta.Table{}
	var errs []error
	for _, f := range s.files {
		for _, c := range f.classes {
			supers := make([]string, 0, len(c.supertypes))
			for _, st := range c.supertypes {
				ref, err := meta.ParseTypeRef(st)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", s.source(c.file, c.line), err))
					continue
				}
				supers = append(supers, s.resolve(ref.Name, c))
			}
			table.Types = append(table.Types, meta.TypeDecl{Name: c.qualified, Supertypes: supers})

			route, ok := findAnnotation(c.annotations, RouteAnnotation)
			if !ok {
				continue
			}
			decl, err := s.declaration(c, route, supers)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			table.Declarations = append(table.Declarations, decl)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return table, nil
}

func (s *SourceScanner) declaration(c *javaClass, route annotation, supers []string) (meta.Declaration, error) {
	src := s.source(c.file, c.line)
	decl := meta.Declaration{Class: c.qualified, Supertypes: supers, Source: src}

	pathExpr, ok := route.args["path"]
	if !ok {
		pathExpr = route.args["value"]
	}
	if len(pathExpr) > 0 {
		path, err := s.evalString(pathExpr, c, map[string]bool{})
		if err != nil {
			return decl, generror.ErrRoute(c.qualified, src, "path: "+err.Error())
		}
		decl.Path = path
	}

	for _, f := range c.fields {
		inject, ok := findAnnotation(f.annotations, InjectAnnotation)
		if !ok {
			continue
		}
		fsrc := s.source(c.file, f.line)
		ref, err := meta.ParseTypeRef(f.typeText)
		if err != nil {
			return decl, generror.ErrField(c.qualified, f.name, fsrc, err.Error())
		}
		fd := meta.FieldDecl{
			Field: f.name,
			Type:  ref.MapNames(func(n string) string { return s.resolve(n, c) }).String(),
		}
		if expr, ok := inject.args["name"]; ok {
			if fd.Name, err = s.evalString(expr, c, map[string]bool{}); err != nil {
				return decl, generror.ErrField(c.qualified, f.name, fsrc, "name: "+err.Error())
			}
		}
		if expr, ok := inject.args["desc"]; ok {
			if fd.Desc, err = s.evalString(expr, c, map[string]bool{}); err != nil {
				return decl, generror.ErrField(c.qualified, f.name, fsrc, "desc: "+err.Error())
			}
		}
		if expr, ok := inject.args["required"]; ok {
			if len(expr) != 1 || (!expr[0].isIdent("true") && !expr[0].isIdent("false")) {
				return decl, generror.ErrField(c.qualified, f.name, fsrc, "required: expected boolean literal")
			}
			v := expr[0].text == "true"
			fd.Required = &v
		}
		decl.Fields = append(decl.Fields, fd)
	}
	return decl, nil
}

func (s *SourceScanner) source(f *javaFile, line int) string {
	return fmt.Sprintf("%s:%d", f.path, line)
}

func (s *SourceScanner) known(name string) bool {
	if _, ok := s.classes[name]; ok {
		return true
	}
	return s.Known != nil && s.Known(name)
}

// resolve maps a possibly simple or partially qualified name as written in
// class c to a fully-qualified name.
func (s *SourceScanner) resolve(name string, c *javaClass) string {
	if meta.IsPrimitiveName(name) || name == "void" {
		return name
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		head, rest := name[:i], name[i+1:]
		if q, ok := s.resolveSimple(head, c); ok {
			return q + "." + rest
		}
		return name
	}
	q, _ := s.resolveSimple(name, c)
	return q
}

// resolveSimple follows Java's lookup order for a simple type name: enclosing
// classes, single-type imports, the current package, on-demand imports and
// java.lang. Unresolvable names fall back to the current package.
func (s *SourceScanner) resolveSimple(name string, c *javaClass) (string, bool) {
	for k := c; k != nil; k = k.outer {
		if k.name == name {
			return k.qualified, true
		}
		if s.known(k.qualified + "." + name) {
			return k.qualified + "." + name, true
		}
	}
	f := c.file
	if q, ok := f.imports[name]; ok {
		return q, true
	}
	local := name
	if f.pkg != "" {
		local = f.pkg + "." + name
	}
	if s.known(local) {
		return local, true
	}
	for _, w := range f.wildcards {
		if s.known(w + "." + name) {
			return w + "." + name, true
		}
	}
	if javaLang[name] {
		return "java.lang." + name, true
	}
	return local, false
}

// evalString evaluates a compile-time constant string expression: string
// literals and references to constant fields joined by '+'.
func (s *SourceScanner) evalString(expr []token, c *javaClass, visiting map[string]bool) (string, error) {
	for parenthesized(expr) {
		expr = expr[1 : len(expr)-1]
	}
	if len(expr) == 0 {
		return "", fmt.Errorf("empty expression")
	}
	var b strings.Builder
	var term []token
	flush := func() error {
		v, err := s.evalTerm(term, c, visiting)
		if err != nil {
			return err
		}
		b.WriteString(v)
		term = term[:0]
		return nil
	}
	depth := 0
	for _, t := range expr {
		switch {
		case t.is("("):
			depth++
		case t.is(")"):
			depth--
		}
		if depth == 0 && t.is("+") {
			if err := flush(); err != nil {
				return "", err
			}
			continue
		}
		term = append(term, t)
	}
	if err := flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *SourceScanner) evalTerm(term []token, c *javaClass, visiting map[string]bool) (string, error) {
	if len(term) == 1 && term[0].kind == tokString {
		return term[0].text, nil
	}
	if parenthesized(term) {
		return s.evalString(term, c, visiting)
	}
	var parts []string
	for i, t := range term {
		if i%2 == 0 && t.kind != tokIdent || i%2 == 1 && !t.is(".") {
			return "", fmt.Errorf("not a constant string expression: %s", joinTokens(term))
		}
		if t.kind == tokIdent {
			parts = append(parts, t.text)
		}
	}
	if len(parts) == 0 || len(term)%2 == 0 {
		return "", fmt.Errorf("not a constant string expression: %s", joinTokens(term))
	}

	field := parts[len(parts)-1]
	var owner *javaClass
	if len(parts) == 1 {
		for k := c; k != nil && owner == nil; k = k.outer {
			if k.field(field) != nil {
				owner = k
			}
		}
	} else {
		owner = s.classes[s.resolve(strings.Join(parts[:len(parts)-1], "."), c)]
	}
	if owner == nil {
		return "", fmt.Errorf("unresolved constant %s", strings.Join(parts, "."))
	}
	f := owner.field(field)
	if f == nil || len(f.init) == 0 {
		return "", fmt.Errorf("unresolved constant %s", strings.Join(parts, "."))
	}
	key := owner.qualified + "#" + field
	if visiting[key] {
		return "", fmt.Errorf("constant %s refers to itself", key)
	}
	visiting[key] = true
	defer delete(visiting, key)
	return s.evalString(f.init, owner, visiting)
}

func (c *javaClass) field(name string) *javaField {
	for i := range c.fields {
		if c.fields[i].name == name {
			return &c.fields[i]
		}
	}
	return nil
}

// parenthesized reports whether the whole expression is one (...) group.
func parenthesized(expr []token) bool {
	if len(expr) < 2 || !expr[0].is("(") || !expr[len(expr)-1].is(")") {
		return false
	}
	depth := 0
	for i, t := range expr {
		switch {
		case t.is("("):
			depth++
		case t.is(")"):
			depth--
			if depth == 0 && i < len(expr)-1 {
				return false
			}
		}
	}
	return true
}

func findAnnotation(list []annotation, simple string) (annotation, bool) {
	for _, a := range list {
		if a.simpleName() == simple {
			return a, true
		}
	}
	return annotation{}, false
}

func joinTokens(toks []token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		if t.kind == tokString {
			parts[i] = fmt.Sprintf("%q", t.text)
		} else {
			parts[i] = t.text
		}
	}
	return strings.Join(parts, " ")
}
