package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/Alia5/launchgen/internal/codegen/generator"
	"github.com/Alia5/launchgen/internal/codegen/launch"
	"github.com/Alia5/launchgen/internal/codegen/scanner"
	"github.com/Alia5/launchgen/internal/log"
)

type Generate struct {
	ModuleName   string   `help:"Build module name; names the generated container (<Module>ActivityLaunch)" required:"" env:"LAUNCHGEN_MODULE_NAME"`
	Source       []string `help:"Java source directory or file to scan (repeatable)" type:"path" env:"LAUNCHGEN_SOURCE"`
	Manifest     []string `help:"Route metadata table (.json, .yaml, .toml) as a path or afs URL (repeatable)" env:"LAUNCHGEN_MANIFEST"`
	Output       string   `help:"Generated-sources root (directory or afs URL)" default:"./build/generated/source/launch" env:"LAUNCHGEN_OUTPUT"`
	Lang         string   `help:"Target language: java, kotlin, or 'all'" default:"java" enum:"java,kotlin,all" env:"LAUNCHGEN_LANG"`
	Package      string   `help:"Package of the generated container" default:"com.alibaba.android.arouter.launch" env:"LAUNCHGEN_PACKAGE"`
	ObjectPolicy string   `help:"Fields the bundle cannot carry: skip (keep parameter, no insertion) or fail" default:"skip" enum:"skip,fail" env:"LAUNCHGEN_OBJECT_POLICY"`
	Dispatcher   string   `help:"Navigator as Class[#instance#navigate]" default:"com.alibaba.android.arouter.launcher.ARouter#getInstance#navigation" env:"LAUNCHGEN_DISPATCHER"`
	ContextType  string   `help:"Type of the leading context parameter" default:"android.content.Context" env:"LAUNCHGEN_CONTEXT_TYPE"`
	BundleType   string   `help:"Type of the parameter bag" default:"android.os.Bundle" env:"LAUNCHGEN_BUNDLE_TYPE"`
	DryRun       bool     `help:"Render without writing; sources go to stdout, or to --log.dump-file when set" env:"LAUNCHGEN_DRY_RUN"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger, dump log.SourceDumper) error {
	ctx := context.Background()
	logger.Info("Starting launch code generation", "module", c.ModuleName, "output", c.Output, "lang", c.Lang)

	nav, err := ParseDispatcher(c.Dispatcher)
	if err != nil {
		return err
	}
	output, err := outputURL(c.Output)
	if err != nil {
		return err
	}

	gen := generator.New(output, afs.New(), logger, generator.Options{
		ModuleName:   c.ModuleName,
		Package:      c.Package,
		Sources:      c.Source,
		Manifests:    c.Manifest,
		ObjectPolicy: scanner.ObjectPolicy(c.ObjectPolicy),
		Navigator:    nav,
		ContextType:  c.ContextType,
		BundleType:   c.BundleType,
		Dumper:       dump,
		DryRun:       c.DryRun,
	})

	langs := []string{c.Lang}
	if c.Lang == "all" {
		langs = generator.Languages()
	}
	return gen.Generate(ctx, langs...)
}

// ParseDispatcher reads "Class", "Class#instance" or "Class#instance#navigate".
func ParseDispatcher(s string) (launch.Navigator, error) {
	parts := strings.Split(s, "#")
	if len(parts) > 3 || parts[0] == "" {
		return launch.Navigator{}, fmt.Errorf("invalid dispatcher %q (expected Class[#instance#navigate])", s)
	}
	nav := launch.Navigator{Class: parts[0]}
	if len(parts) > 1 {
		nav.Instance = parts[1]
	}
	if len(parts) > 2 {
		nav.Navigate = parts[2]
	}
	return nav, nil
}

// outputURL turns plain paths into absolute file locations; URLs with a
// scheme pass through.
func outputURL(output string) (string, error) {
	if strings.Contains(output, "://") {
		return output, nil
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	return abs, nil
}
