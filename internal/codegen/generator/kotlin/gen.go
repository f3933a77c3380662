// Package kotlin prints a launch unit as a Kotlin object with @JvmStatic
// launch functions, callable from Java exactly like the Java container.
package kotlin

import (
	"bytes"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"text/template"

	"github.com/Alia5/launchgen/internal/codegen/common"
	"github.com/Alia5/launchgen/internal/codegen/launch"
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

const objectTemplate = `{{.Header}}package {{.Package}}
{{if .Imports}}
{{range .Imports}}import {{.}}
{{end}}{{end}}
/**
 * {{.Warning}}
 */
object {{.ClassName}} {
{{range $i, $m := .Methods}}{{if $i}}
{{end}}    @JvmStatic
    fun {{$m.Name}}({{params $m}}) {
{{range body $m}}        {{.}}
{{end}}    }
{{end}}}
`

// Hard keywords that must be backticked when used as identifiers.
var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true, "in": true,
	"interface": true, "is": true, "null": true, "object": true, "package": true,
	"return": true, "super": true, "this": true, "throw": true, "true": true,
	"try": true, "typealias": true, "typeof": true, "val": true, "var": true,
	"when": true, "while": true,
}

// Java types with a Kotlin built-in counterpart.
var mapped = map[string]string{
	"boolean":                "Boolean",
	"byte":                   "Byte",
	"short":                  "Short",
	"int":                    "Int",
	"long":                   "Long",
	"char":                   "Char",
	"float":                  "Float",
	"double":                 "Double",
	"java.lang.Boolean":      "Boolean",
	"java.lang.Byte":         "Byte",
	"java.lang.Short":        "Short",
	"java.lang.Integer":      "Int",
	"java.lang.Long":         "Long",
	"java.lang.Character":    "Char",
	"java.lang.Float":        "Float",
	"java.lang.Double":       "Double",
	"java.lang.String":       "String",
	"java.lang.Object":       "Any",
	"java.lang.CharSequence": "CharSequence",
	"java.lang.Number":       "Number",
	"java.lang.Comparable":   "Comparable",
}

var tmpl = template.Must(template.New("kotlin").Funcs(template.FuncMap{
	"params": func(launch.Method) string { return "" },
	"body":   func(launch.Method) []string { return nil },
}).Parse(objectTemplate))

// Generate renders the unit as <package path>/<ClassName>.kt.
func Generate(logger *slog.Logger, u *launch.Unit) (launch.Source, error) {
	logger.Debug("Rendering Kotlin launch container", "object", u.Module.ClassName, "methods", len(u.Methods))

	imports := common.NewImportSet(u.Package, []string{u.Module.ClassName}, typeNames(u), nil)
	p := &printer{unit: u, imports: imports}

	t, err := tmpl.Clone()
	if err != nil {
		return launch.Source{}, fmt.Errorf("clone template: %w", err)
	}
	t.Funcs(template.FuncMap{"params": p.params, "body": p.body})

	var escapedImports []string
	for _, q := range imports.Imports() {
		escapedImports = append(escapedImports, escapePath(q))
	}
	data := struct {
		Header    string
		Package   string
		Imports   []string
		Warning   string
		ClassName string
		Methods   []launch.Method
	}{
		Header:    common.FileHeader(u.Version, u.Digest),
		Package:   escapePath(u.Package),
		Imports:   escapedImports,
		Warning:   common.WarningTips,
		ClassName: u.Module.ClassName,
		Methods:   u.Methods,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return launch.Source{}, fmt.Errorf("execute template: %w", err)
	}
	return launch.Source{
		Path:    path.Join(common.PackagePath(u.Package), u.Module.ClassName+".kt"),
		Content: buf.Bytes(),
	}, nil
}

func typeNames(u *launch.Unit) []string {
	if len(u.Methods) == 0 {
		return nil
	}
	names := []string{u.ContextType, u.BundleType, u.Navigator.Class}
	for _, m := range u.Methods {
		for _, p := range m.Params {
			p.Type.Walk(func(n string) {
				if _, ok := mapped[n]; !ok {
					names = append(names, n)
				}
			})
		}
	}
	return names
}

func ident(name string) string {
	if keywords[name] {
		return "`" + name + "`"
	}
	return name
}

func escapePath(q string) string {
	parts := strings.Split(q, ".")
	for i, p := range parts {
		parts[i] = ident(p)
	}
	return strings.Join(parts, ".")
}

type printer struct {
	unit    *launch.Unit
	imports *common.ImportSet
}

// typeName renders a Java type reference in Kotlin syntax. Top-level
// reference types are nullable platform values.
func (p *printer) typeName(t meta.TypeRef) string {
	name := p.render(t)
	if t.IsPrimitive() {
		return name
	}
	return name + "?"
}

func (p *printer) render(t meta.TypeRef) string {
	if t.IsWildcard() {
		if len(t.Args) == 0 || t.Bound == "" {
			return "*"
		}
		if t.Bound == "super" {
			return "in " + p.render(t.Args[0])
		}
		return "out " + p.render(t.Args[0])
	}
	if t.Dims > 0 {
		elem := meta.TypeRef{Name: t.Name, Args: t.Args, Dims: t.Dims - 1}
		if elem.IsPrimitive() {
			return mapped[elem.Name] + "Array"
		}
		return "Array<" + p.render(elem) + ">"
	}

	var b strings.Builder
	if k, ok := mapped[t.Name]; ok {
		b.WriteString(k)
	} else {
		b.WriteString(escapePath(p.imports.Name(t.Name)))
	}
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = p.render(a)
		}
		b.WriteString("<" + strings.Join(args, ", ") + ">")
	}
	return b.String()
}

func (p *printer) params(m launch.Method) string {
	parts := []string{ident(m.Context) + ": " + escapePath(p.imports.Name(p.unit.ContextType))}
	for _, prm := range m.Params {
		parts = append(parts, ident(prm.Name)+": "+p.typeName(prm.Type))
	}
	return strings.Join(parts, ", ")
}

func (p *printer) body(m launch.Method) []string {
	types := make(map[string]meta.TypeRef, len(m.Params))
	for _, prm := range m.Params {
		types[prm.Name] = prm.Type
	}
	var lines []string
	for _, st := range m.Body {
		switch s := st.(type) {
		case launch.NewBag:
			lines = append(lines, fmt.Sprintf("val %s = %s()", ident(s.Var), escapePath(p.imports.Name(p.unit.BundleType))))
		case launch.Put:
			// Boxed values arrive as Int? and friends; the bundle wants Int.
			if t, ok := types[s.Value]; ok && s.Kind.IsPrimitive() && !t.IsPrimitive() {
				lines = append(lines, fmt.Sprintf("%s?.let { %s.%s(%s, it) }", ident(s.Value), ident(s.Bag), s.Op, common.QuoteKotlin(s.Key)))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s.%s(%s, %s)", ident(s.Bag), s.Op, common.QuoteKotlin(s.Key), ident(s.Value)))
		case launch.Dispatch:
			if len(m.Omitted) > 0 {
				lines = append(lines, "// not carried by the bundle: "+strings.Join(m.Omitted, ", "))
			}
			nav := p.unit.Navigator
			lines = append(lines, fmt.Sprintf("%s.%s().build(%s).with(%s).%s()",
				escapePath(p.imports.Name(nav.Class)), nav.Instance, common.QuoteKotlin(s.Path), ident(s.Bag), nav.Navigate))
		}
	}
	return lines
}
