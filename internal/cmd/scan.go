package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/viant/afs"

	"github.com/Alia5/launchgen/internal/codegen/classify"
	"github.com/Alia5/launchgen/internal/codegen/meta"
	"github.com/Alia5/launchgen/internal/codegen/scanner"
	"github.com/Alia5/launchgen/internal/configpaths"
)

type Scan struct {
	Source   []string `arg:"" help:"Java source directories or files" type:"path"`
	Manifest []string `help:"Extra metadata tables to merge before the sources (repeatable)"`
	Format   string   `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output   string   `help:"Write the table to this file instead of stdout"`
	Validate bool     `help:"Also run route validation and report the screens found"`
}

// Run is called by Kong when the scan command is executed.
func (c *Scan) Run(logger *slog.Logger) error {
	ctx := context.Background()
	fs := afs.New()
	hierarchy := classify.NewHierarchy()

	table := &meta.Table{}
	for _, URL := range c.Manifest {
		t, err := scanner.LoadManifest(ctx, fs, URL)
		if err != nil {
			return err
		}
		table.Merge(t)
	}
	hierarchy.AddAll(table.Types)

	t, err := scanner.ScanJavaSources(c.Source, hierarchy.Knows)
	if err != nil {
		return err
	}
	table.Merge(t)
	logger.Info("Scanned sources", "types", len(table.Types), "routes", len(table.Declarations))

	if c.Validate {
		routes, err := scanner.NewRouteScanner(logger, hierarchy, scanner.ObjectSkip).Scan(table)
		if err != nil {
			return err
		}
		logger.Info("Route declarations are valid", "screens", len(routes))
	}

	data, err := scanner.EncodeManifest(table, c.Format)
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if c.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return writeTable(c.Output, data)
}

func writeTable(dest string, data []byte) error {
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}
