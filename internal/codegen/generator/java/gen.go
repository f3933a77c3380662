// Package java prints a launch unit as a Java source file.
package java

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

const classTemplate = `{{.Header}}package {{.Package}};
{{if .Imports}}
{{range .Imports}}import {{.}};
{{end}}{{end}}
/**
 * {{.Warning}}
 */
public final class {{.ClassName}} {
{{range $i, $m := .Methods}}{{if $i}}
{{end}}  public static void {{$m.Name}}({{params $m}}) {
{{range body $m}}    {{.}}
{{end}}  }
{{end}}}
`

var tmpl = template.Must(template.New("java").Funcs(template.FuncMap{
	"params": func(launch.Method) string { return "" },
	"body":   func(launch.Method) []string { return nil },
}).Parse(classTemplate))

// Generate renders the unit as <package path>/<ClassName>.java.
func Generate(logger *slog.Logger, u *launch.Unit) (launch.Source, error) {
	logger.Debug("Rendering Java launch container", "class", u.Module.ClassName, "methods", len(u.Methods))

	imports := common.NewImportSet(u.Package, []string{u.Module.ClassName}, typeNames(u), isJavaLang)
	p := &printer{unit: u, imports: imports}

	t, err := tmpl.Clone()
	if err != nil {
		return launch.Source{}, fmt.Errorf("clone template: %w", err)
	}
	t.Funcs(template.FuncMap{"params": p.params, "body": p.body})

	data := struct {
		Header    string
		Package   string
		Imports   []string
		Warning   string
		ClassName string
		Methods   []launch.Method
	}{
		Header:    common.FileHeader(u.Version, u.Digest),
		Package:   u.Package,
		Imports:   imports.Imports(),
		Warning:   common.WarningTips,
		ClassName: u.Module.ClassName,
		Methods:   u.Methods,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return launch.Source{}, fmt.Errorf("execute template: %w", err)
	}
	return launch.Source{
		Path:    path.Join(common.PackagePath(u.Package), u.Module.ClassName+".java"),
		Content: buf.Bytes(),
	}, nil
}

func isJavaLang(q string) bool {
	return meta.PackageOf(q) == "java.lang"
}

func typeNames(u *launch.Unit) []string {
	if len(u.Methods) == 0 {
		return nil
	}
	names := []string{u.ContextType, u.BundleType, u.Navigator.Class}
	for _, m := range u.Methods {
		for _, p := range m.Params {
			p.Type.Walk(func(n string) { names = append(names, n) })
		}
	}
	return names
}

type printer struct {
	unit    *launch.Unit
	imports *common.ImportSet
}

func (p *printer) typeName(t meta.TypeRef) string {
	return t.MapNames(p.imports.Name).String()
}

func (p *printer) params(m launch.Method) string {
	parts := []string{p.imports.Name(p.unit.ContextType) + " " + m.Context}
	for _, prm := range m.Params {
		parts = append(parts, p.typeName(prm.Type)+" "+prm.Name)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) body(m launch.Method) []string {
	var lines []string
	for _, st := range m.Body {
		switch s := st.(type) {
		case launch.NewBag:
			bundle := p.imports.Name(p.unit.BundleType)
			lines = append(lines, fmt.Sprintf("%s %s = new %s();", bundle, s.Var, bundle))
		case launch.Put:
			lines = append(lines, fmt.Sprintf("%s.%s(%s, %s);", s.Bag, s.Op, common.QuoteJava(s.Key), s.Value))
		case launch.Dispatch:
			if len(m.Omitted) > 0 {
				lines = append(lines, "// not carried by the bundle: "+strings.Join(m.Omitted, ", "))
			}
			nav := p.unit.Navigator
			lines = append(lines, fmt.Sprintf("%s.%s().build(%s).with(%s).%s();",
				p.imports.Name(nav.Class), nav.Instance, common.QuoteJava(s.Path), s.Bag, nav.Navigate))
		}
	}
	return lines
}
