package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/launchgen/internal/codegen/launch"
)

func TestParseDispatcher(t *testing.T) {
	nav, err := ParseDispatcher("com.alibaba.android.arouter.launcher.ARouter#getInstance#navigation")
	require.NoError(t, err)
	assert.Equal(t, launch.Navigator{
		Class:    "com.alibaba.android.arouter.launcher.ARouter",
		Instance: "getInstance",
		Navigate: "navigation",
	}, nav)

	nav, err = ParseDispatcher("com.example.Router")
	require.NoError(t, err)
	assert.Equal(t, launch.Navigator{Class: "com.example.Router"}, nav)

	_, err = ParseDispatcher("")
	require.Error(t, err)
	_, err = ParseDispatcher("a#b#c#d")
	require.Error(t, err)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "module-name", flagName("ModuleName"))
	assert.Equal(t, "output", flagName("Output"))
	assert.Equal(t, "dry-run", flagName("DryRun"))
}

func TestTemplateGenerate(t *testing.T) {
	data, err := Template("generate", "json")
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, "", cfg["module-name"])
	assert.Equal(t, "java", cfg["lang"])
	assert.Equal(t, "skip", cfg["object-policy"])
	assert.Equal(t, "com.alibaba.android.arouter.launch", cfg["package"])
	assert.Equal(t, false, cfg["dry-run"])
	assert.Equal(t, []any{}, cfg["source"])
}

func TestTemplateScanSkipsArguments(t *testing.T) {
	data, err := Template("scan", "yml")
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "json", cfg["format"])
	assert.NotContains(t, cfg, "source")
}

func TestTemplateErrors(t *testing.T) {
	_, err := Template("server", "json")
	require.Error(t, err)
	_, err = Template("generate", "ini")
	require.Error(t, err)
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "conf", "generate.toml")
	c := &ConfigInit{Command: "generate", Format: "toml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "module-name")

	require.Error(t, c.Run())
	c.Force = true
	require.NoError(t, c.Run())
}

func TestOutputURL(t *testing.T) {
	u, err := outputURL("mem://localhost/out")
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/out", u)

	u, err = outputURL("build/generated")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(u))
}
