package common_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/launchgen/internal/codegen/common"
	"github.com/Alia5/launchgen/internal/codegen/generror"
)

func TestContainerName(t *testing.T) {
	tests := []struct {
		module   string
		expected string
	}{
		{module: "user", expected: "UserActivityLaunch"},
		{module: "app", expected: "AppActivityLaunch"},
		{module: "user-center", expected: "UsercenterActivityLaunch"},
		{module: "user_center", expected: "User_centerActivityLaunch"},
		{module: "Home", expected: "HomeActivityLaunch"},
		{module: "1feature", expected: "Num1featureActivityLaunch"},
		{module: ":feature:login", expected: "FeatureloginActivityLaunch"},
	}
	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			name, err := common.ContainerName(tt.module)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestContainerNameRequiresModule(t *testing.T) {
	for _, module := range []string{"", "-", "  "} {
		_, err := common.ContainerName(module)
		var cerr *generror.ConfigurationError
		require.True(t, errors.As(err, &cerr), "module %q", module)
		assert.Equal(t, "module-name", cerr.Option)
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"/app/test"`, common.QuoteJava("/app/test"))
	assert.Equal(t, `"a\"b\\c\n"`, common.QuoteJava("a\"b\\c\n"))
	assert.Equal(t, `"$x"`, common.QuoteJava("$x"))
	assert.Equal(t, `"\$x"`, common.QuoteKotlin("$x"))
	assert.Equal(t, `"\u0001"`, common.QuoteJava("\x01"))
}

func TestImportSet(t *testing.T) {
	isJavaLang := func(q string) bool { return len(q) > 10 && q[:10] == "java.lang." }
	set := common.NewImportSet("com.example.launch",
		[]string{"AppActivityLaunch"},
		[]string{
			"android.os.Bundle",
			"java.lang.String",
			"com.example.launch.Helper",
			"com.example.model.User",
			"com.other.User",
			"android.os.Bundle",
			"com.example.AppActivityLaunch",
			"int",
		},
		isJavaLang)

	assert.Equal(t, []string{"android.os.Bundle", "com.example.model.User"}, set.Imports())
	assert.Equal(t, "Bundle", set.Name("android.os.Bundle"))
	assert.Equal(t, "String", set.Name("java.lang.String"))
	assert.Equal(t, "Helper", set.Name("com.example.launch.Helper"))
	assert.Equal(t, "User", set.Name("com.example.model.User"))
	assert.Equal(t, "com.other.User", set.Name("com.other.User"), "second User stays qualified")
	assert.Equal(t, "com.example.AppActivityLaunch", set.Name("com.example.AppActivityLaunch"), "clashes with the unit's own class")
	assert.Equal(t, "int", set.Name("int"))
	assert.Equal(t, "x.y.Unseen", set.Name("x.y.Unseen"))
}

func TestDigest(t *testing.T) {
	type input struct {
		Module string
		Paths  []string
	}
	a, err := common.Digest(input{Module: "app", Paths: []string{"/a/b"}})
	require.NoError(t, err)
	b, err := common.Digest(input{Module: "app", Paths: []string{"/a/b"}})
	require.NoError(t, err)
	c, err := common.Digest(input{Module: "app", Paths: []string{"/a/c"}})
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFileHeader(t *testing.T) {
	h := common.FileHeader("1.2.3", "abc")
	assert.Equal(t, "/*\n * "+common.WarningTips+"\n * Generator version: 1.2.3\n * Input digest: abc\n */\n", h)
	assert.NotContains(t, common.FileHeader("1.2.3", ""), "digest")
}

func TestGetVersion(t *testing.T) {
	orig := common.Version
	t.Cleanup(func() { common.Version = orig })

	common.Version = ""
	v, err := common.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.0.1-dev", v)

	common.Version = "v1.4.0-rc1"
	v, err = common.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.4.0-rc1", v)

	common.Version = "garbage"
	_, err = common.GetVersion()
	require.Error(t, err)
}
