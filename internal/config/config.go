// Package config holds the root command-line structure parsed by kong.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/launchgen/internal/cmd"
)

// Log groups the global logging flags.
type Log struct {
	Level    string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"LAUNCHGEN_LOG_LEVEL"`
	File     string `help:"Write logs to this file (errors and everything else go to stderr then)" env:"LAUNCHGEN_LOG_FILE"`
	Format   string `help:"Log format: text, json, or auto (text on a terminal, json otherwise)" default:"auto" enum:"text,json,auto" env:"LAUNCHGEN_LOG_FORMAT"`
	DumpFile string `help:"Also write every rendered source to this file" env:"LAUNCHGEN_LOG_DUMP_FILE"`
}

// CLI is the root command.
type CLI struct {
	Config  string           `help:"Path to a JSON/YAML/TOML configuration file" type:"path" env:"LAUNCHGEN_CONFIG"`
	Version kong.VersionFlag `help:"Print the generator version and exit"`
	Log     Log              `embed:"" prefix:"log."`

	Generate  cmd.Generate      `cmd:"" help:"Generate launch helpers for a module's routes" default:"withargs"`
	Scan      cmd.Scan          `cmd:"" help:"Scan Java sources and print the route metadata table"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
