package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in     string
		name   string
		args   int
		dims   int
		out    string
		erased string
	}{
		{in: "int", name: "int", out: "int", erased: "int"},
		{in: "java.lang.String", name: "java.lang.String", out: "java.lang.String", erased: "java.lang.String"},
		{in: "int[][]", name: "int", dims: 2, out: "int[][]", erased: "int[][]"},
		{in: "String...", name: "String", dims: 1, out: "String[]", erased: "String[]"},
		{in: "Map<String,List<Integer>>", name: "Map", args: 2, out: "Map<String, List<Integer>>", erased: "Map"},
		{in: "List<? extends Foo>", name: "List", args: 1, out: "List<? extends Foo>", erased: "List"},
		{in: "List<?>[]", name: "List", args: 1, dims: 1, out: "List<?>[]", erased: "List[]"},
		{in: " java.util.Map . Entry < K , V > ", name: "java.util.Map.Entry", args: 2, out: "java.util.Map.Entry<K, V>", erased: "java.util.Map.Entry"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseTypeRef(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.name, ref.Name)
			assert.Len(t, ref.Args, tt.args)
			assert.Equal(t, tt.dims, ref.Dims)
			assert.Equal(t, tt.out, ref.String())
			assert.Equal(t, tt.erased, ref.Erased())
		})
	}
}

func TestParseTypeRefErrors(t *testing.T) {
	for _, in := range []string{"", "List<String", "int[", "Map<,>", "a b"} {
		_, err := ParseTypeRef(in)
		assert.Error(t, err, in)
	}
}

func TestMapNames(t *testing.T) {
	ref := MustParseTypeRef("HashMap<String, ? super Foo>[]")
	mapped := ref.MapNames(func(n string) string { return "x." + n })
	assert.Equal(t, "x.HashMap<x.String, ? super x.Foo>[]", mapped.String())

	var names []string
	ref.Walk(func(n string) { names = append(names, n) })
	assert.Equal(t, []string{"HashMap", "String", "Foo"}, names)
}

func TestFieldDeclDefaults(t *testing.T) {
	no := false
	f := FieldDecl{Field: "age"}
	assert.Equal(t, "age", f.EffectiveName())
	assert.True(t, f.IsRequired())

	f = FieldDecl{Field: "age", Name: "userAge", Required: &no}
	assert.Equal(t, "userAge", f.EffectiveName())
	assert.False(t, f.IsRequired())

	assert.Equal(t, "TestActivity", SimpleName("com.example.app.TestActivity"))
	assert.Equal(t, "com.example.app", PackageOf("com.example.app.TestActivity"))
	assert.Equal(t, "", PackageOf("Plain"))
}
