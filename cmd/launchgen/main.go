package main

import (
	"os"
	"strings"

	"github.com/Alia5/launchgen/internal/codegen/common"
	"github.com/Alia5/launchgen/internal/config"
	"github.com/Alia5/launchgen/internal/configpaths"
	"github.com/Alia5/launchgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; variables already set win over it.
	_ = godotenv.Load()

	userCfg := findUserConfig(os.Args[1:])
	candidates := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("launchgen"),
		kong.Description("Generates typed ARouter launch helpers from @Route screens"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, candidates.JSON...),
		kong.Configuration(kongyaml.Loader, candidates.YAML...),
		kong.Configuration(kongtoml.Loader, candidates.TOML...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var dump log.SourceDumper
	if cli.Log.DumpFile != "" {
		f, err := os.OpenFile(cli.Log.DumpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open dump file", "file", cli.Log.DumpFile, "error", err)
			dump = log.NewDump(nil)
		} else {
			dump = log.NewDump(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Generate.DryRun {
		dump = log.NewDump(os.Stdout)
	} else {
		dump = log.NewDump(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(dump, (*log.SourceDumper)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("LAUNCHGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}
