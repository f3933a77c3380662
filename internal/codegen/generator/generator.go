// Package generator drives one generation run: it builds the metadata
// table, plans and emits the launch methods, renders them with the
// requested language printers and hands the result to the writer.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/viant/afs"

	"github.com/Alia5/launchgen/internal/codegen/classify"
	"github.com/Alia5/launchgen/internal/codegen/common"
	"github.com/Alia5/launchgen/internal/codegen/generator/java"
	"github.com/Alia5/launchgen/internal/codegen/generator/kotlin"
	"github.com/Alia5/launchgen/internal/codegen/generror"
	"github.com/Alia5/launchgen/internal/codegen/launch"
	"github.com/Alia5/launchgen/internal/codegen/meta"
	"github.com/Alia5/launchgen/internal/codegen/scanner"
	"github.com/Alia5/launchgen/internal/log"
)

// Defaults for the generated namespace and the Android collaborators.
const (
	DefaultPackage     = "com.alibaba.android.arouter.launch"
	DefaultDispatcher  = "com.alibaba.android.arouter.launcher.ARouter"
	DefaultInstance    = "getInstance"
	DefaultNavigate    = "navigation"
	DefaultContextType = classify.ContextType
	DefaultBundleType  = classify.BundleType
)

// Options configure a run. ModuleName is required; every other field has
// a default.
type Options struct {
	ModuleName   string
	Package      string
	Sources      []string
	Manifests    []string
	ObjectPolicy scanner.ObjectPolicy
	Navigator    launch.Navigator
	ContextType  string
	BundleType   string

	// Dumper receives every rendered source before it is written.
	Dumper log.SourceDumper
	DryRun bool
}

type Generator struct {
	outputURL string
	fs        afs.Service
	logger    *slog.Logger
	opts      Options
}

type LanguageGenerator func(logger *slog.Logger, u *launch.Unit) (launch.Source, error)

var generators = map[string]LanguageGenerator{
	"java":   java.Generate,
	"kotlin": kotlin.Generate,
}

// Languages returns the supported target languages, sorted.
func Languages() []string {
	out := make([]string, 0, len(generators))
	for k := range generators {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func New(outputURL string, fs afs.Service, logger *slog.Logger, opts Options) *Generator {
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	if opts.ObjectPolicy == "" {
		opts.ObjectPolicy = scanner.ObjectSkip
	}
	if opts.Navigator.Class == "" {
		opts.Navigator.Class = DefaultDispatcher
	}
	if opts.Navigator.Instance == "" {
		opts.Navigator.Instance = DefaultInstance
	}
	if opts.Navigator.Navigate == "" {
		opts.Navigator.Navigate = DefaultNavigate
	}
	if opts.ContextType == "" {
		opts.ContextType = DefaultContextType
	}
	if opts.BundleType == "" {
		opts.BundleType = DefaultBundleType
	}
	if opts.Dumper == nil {
		opts.Dumper = log.NewDump(nil)
	}
	return &Generator{
		outputURL: outputURL,
		fs:        fs,
		logger:    logger,
		opts:      opts,
	}
}

// GenAll renders every supported language and writes the result.
func (g *Generator) GenAll(ctx context.Context) error {
	return g.Generate(ctx, Languages()...)
}

// Generate builds the unit once, renders it for each language and writes
// all sources. Nothing is written unless every step succeeds, and nothing at
// all in a dry run.
func (g *Generator) Generate(ctx context.Context, langs ...string) error {
	sources, err := g.Render(ctx, langs...)
	if err != nil {
		return err
	}
	for _, src := range sources {
		g.opts.Dumper.Dump(src.Path, src.Content)
	}
	if g.opts.DryRun {
		g.logger.Info("Dry run, nothing written", "files", len(sources))
		return nil
	}
	w := NewWriter(g.fs, g.outputURL, g.logger)
	if err := w.WriteAll(ctx, sources); err != nil {
		return err
	}
	g.logger.Info("Launch code generation complete", "module", g.opts.ModuleName, "output", g.outputURL, "files", len(sources))
	return nil
}

// Render builds the unit and renders it for each language without writing.
func (g *Generator) Render(ctx context.Context, langs ...string) ([]launch.Source, error) {
	gens := make([]LanguageGenerator, 0, len(langs))
	for _, lang := range langs {
		gen, ok := generators[lang]
		if !ok {
			return nil, generror.ErrInvalidOption("lang",
				fmt.Sprintf("unsupported language '%s' (supported: %s)", lang, strings.Join(Languages(), ", ")))
		}
		gens = append(gens, gen)
	}

	unit, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	sources := make([]launch.Source, 0, len(gens))
	for i, gen := range gens {
		g.logger.Info("Rendering launch container", "language", langs[i], "class", unit.Module.ClassName)
		src, err := gen(g.logger, unit)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", langs[i], err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// Build runs the pipeline up to the language-neutral unit. Options are
// validated before any input is read.
func (g *Generator) Build(ctx context.Context) (*launch.Unit, error) {
	className, err := common.ContainerName(g.opts.ModuleName)
	if err != nil {
		return nil, err
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	hierarchy := classify.NewHierarchy()
	table, err := g.ScanAll(ctx, hierarchy)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Loaded route declarations", "routes", len(table.Declarations), "types", len(table.Types))

	rs := scanner.NewRouteScanner(g.logger, hierarchy, g.opts.ObjectPolicy)
	routes, err := rs.Scan(table)
	if err != nil {
		return nil, fmt.Errorf("scan routes: %w", err)
	}
	g.logger.Info("Found screens", "count", len(routes))

	out, err := launch.Plan(g.opts.ModuleName, routes)
	if err != nil {
		return nil, fmt.Errorf("plan launch methods: %w", err)
	}
	g.logger.Debug("Planned launch methods", "class", className, "methods", len(out.GeneratedMethods))

	version, err := common.GetVersion()
	if err != nil {
		return nil, err
	}
	digest, err := common.Digest(struct {
		Module      string
		Package     string
		Navigator   launch.Navigator
		ContextType string
		BundleType  string
		Policy      scanner.ObjectPolicy
		Table       *meta.Table
	}{g.opts.ModuleName, g.opts.Package, g.opts.Navigator, g.opts.ContextType, g.opts.BundleType, g.opts.ObjectPolicy, table})
	if err != nil {
		return nil, err
	}

	return &launch.Unit{
		Module:      out,
		Package:     g.opts.Package,
		Methods:     launch.EmitAll(out),
		ContextType: g.opts.ContextType,
		BundleType:  g.opts.BundleType,
		Navigator:   g.opts.Navigator,
		Version:     version,
		Digest:      digest,
	}, nil
}

// ScanAll loads manifests in flag order, then Java sources, into a single
// table. Names in sources resolve against the hierarchy's built-ins and the
// manifest types.
func (g *Generator) ScanAll(ctx context.Context, hierarchy *classify.Hierarchy) (*meta.Table, error) {
	table := &meta.Table{}
	for _, URL := range g.opts.Manifests {
		g.logger.Debug("Loading manifest", "url", URL)
		t, err := scanner.LoadManifest(ctx, g.fs, URL)
		if err != nil {
			return nil, err
		}
		table.Merge(t)
	}
	hierarchy.AddAll(table.Types)

	if len(g.opts.Sources) > 0 {
		g.logger.Debug("Scanning Java sources", "paths", g.opts.Sources)
		t, err := scanner.ScanJavaSources(g.opts.Sources, hierarchy.Knows)
		if err != nil {
			return nil, fmt.Errorf("scan sources: %w", err)
		}
		table.Merge(t)
	}
	return table, nil
}

func (g *Generator) validate() error {
	switch g.opts.ObjectPolicy {
	case scanner.ObjectSkip, scanner.ObjectFail:
	default:
		return generror.ErrInvalidOption("object-policy", fmt.Sprintf("unknown policy %q (expected skip or fail)", g.opts.ObjectPolicy))
	}
	if !qualifiedName(g.opts.Package) {
		return generror.ErrInvalidOption("package", fmt.Sprintf("%q is not a valid package name", g.opts.Package))
	}
	for _, t := range []struct{ option, name string }{
		{"dispatcher", g.opts.Navigator.Class},
		{"context-type", g.opts.ContextType},
		{"bundle-type", g.opts.BundleType},
	} {
		if !qualifiedName(t.name) {
			return generror.ErrInvalidOption(t.option, fmt.Sprintf("%q is not a valid type name", t.name))
		}
	}
	if !scanner.IsIdentifier(g.opts.Navigator.Instance) || !scanner.IsIdentifier(g.opts.Navigator.Navigate) {
		return generror.ErrInvalidOption("dispatcher", "instance and navigate must be method names")
	}
	return nil
}

func qualifiedName(name string) bool {
	for _, part := range strings.Split(name, ".") {
		if !scanner.IsIdentifier(part) {
			return false
		}
	}
	return true
}
