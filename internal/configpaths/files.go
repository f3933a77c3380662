// Package configpaths locates launchgen configuration files.
//
// A build usually keeps its options next to the module being generated, so
// the search runs from the most specific location to the least:
//
//	./<name>.<ext>
//	./.launchgen/<name>.<ext>
//	<user config dir>/launchgen/<name>.<ext>
//	/etc/launchgen/<name>.<ext>          (unix only)
//
// where <name> is one of Names and <ext> one of json, yaml, yml, toml.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName    = "launchgen"
	projectDir = ".launchgen"
	systemDir  = "/etc/launchgen"
)

// Names are the config file base names: the shared project file and the
// per-command files written by "config init".
var Names = []string{appName, "generate", "scan"}

// Candidates holds config file paths per loader, highest priority first.
type Candidates struct {
	JSON []string
	YAML []string
	TOML []string
}

func (c *Candidates) add(path string) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		c.YAML = append(c.YAML, path)
	case ".toml":
		c.TOML = append(c.TOML, path)
	default:
		c.JSON = append(c.JSON, path)
	}
}

func (c *Candidates) addDir(dir string) {
	for _, name := range Names {
		for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
			c.add(filepath.Join(dir, name+ext))
		}
	}
}

// DefaultConfigDir returns the user configuration directory for launchgen.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", appName), nil
	}
	return "", errors.New("HOME not set")
}

// FileName returns <baseName>.<ext> for a config format; unknown formats
// fall back to json.
func FileName(baseName, format string) string {
	switch format {
	case "yaml", "yml":
		return baseName + ".yaml"
	case "toml":
		return baseName + ".toml"
	}
	return baseName + ".json"
}

// DefaultNamedConfigPath returns the user-level path of a config file,
// e.g. ~/.config/launchgen/generate.yaml.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName(baseName, format)), nil
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths lists every config location in search order. An
// explicit userPath (--config or LAUNCHGEN_CONFIG) comes first and is routed
// by extension; anything unrecognised is read as JSON.
func ConfigCandidatePaths(userPath string) Candidates {
	var c Candidates
	if userPath != "" {
		c.add(userPath)
	}
	if wd, err := os.Getwd(); err == nil {
		c.addDir(wd)
		c.addDir(filepath.Join(wd, projectDir))
	}
	if dir, err := DefaultConfigDir(); err == nil {
		c.addDir(dir)
	}
	if runtime.GOOS != "windows" {
		c.addDir(systemDir)
	}
	return c
}
