package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/launchgen/internal/codegen/classify"
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

func TestClassify(t *testing.T) {
	h := classify.NewHierarchy()
	h.Add("com.example.User", classify.ParcelableType)
	h.Add("com.example.Order", classify.SerializableType)
	h.Add("com.example.Both", classify.SerializableType, classify.ParcelableType)
	h.Add("com.example.SubOrder", "com.example.Order")
	h.Add("com.example.Plain")
	c := classify.New(h)

	tests := []struct {
		name     string
		typeName string
		expected meta.TypeKind
	}{
		{name: "primitive boolean", typeName: "boolean", expected: meta.KindBoolean},
		{name: "primitive byte", typeName: "byte", expected: meta.KindByte},
		{name: "primitive short", typeName: "short", expected: meta.KindShort},
		{name: "primitive int", typeName: "int", expected: meta.KindInt},
		{name: "primitive long", typeName: "long", expected: meta.KindLong},
		{name: "primitive char", typeName: "char", expected: meta.KindChar},
		{name: "primitive float", typeName: "float", expected: meta.KindFloat},
		{name: "primitive double", typeName: "double", expected: meta.KindDouble},
		{name: "boxed integer", typeName: "java.lang.Integer", expected: meta.KindInt},
		{name: "boxed character", typeName: "java.lang.Character", expected: meta.KindChar},
		{name: "boxed boolean", typeName: "java.lang.Boolean", expected: meta.KindBoolean},
		{name: "string", typeName: "java.lang.String", expected: meta.KindString},
		{name: "parcelable", typeName: "com.example.User", expected: meta.KindParcelable},
		{name: "serializable", typeName: "com.example.Order", expected: meta.KindSerializable},
		{name: "transitive serializable", typeName: "com.example.SubOrder", expected: meta.KindSerializable},
		{name: "parcelable wins over serializable", typeName: "com.example.Both", expected: meta.KindParcelable},
		{name: "builtin parcelable", typeName: "android.net.Uri", expected: meta.KindParcelable},
		{name: "generic serializable collection", typeName: "java.util.ArrayList<java.lang.String>", expected: meta.KindSerializable},
		{name: "interface collection", typeName: "java.util.List<java.lang.String>", expected: meta.KindObject},
		{name: "primitive array", typeName: "int[]", expected: meta.KindSerializable},
		{name: "parcelable array", typeName: "com.example.User[]", expected: meta.KindSerializable},
		{name: "declared plain class", typeName: "com.example.Plain", expected: meta.KindObject},
		{name: "unknown class", typeName: "com.example.Unknown", expected: meta.KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := meta.ParseTypeRef(tt.typeName)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, c.Classify(ref))
		})
	}
}

func TestHierarchy(t *testing.T) {
	h := classify.NewHierarchy()
	activity := meta.MustParseTypeRef("com.example.TestActivity")

	assert.False(t, h.IsSubtype(activity, classify.ActivityType))

	h.Add("com.example.TestActivity", "androidx.appcompat.app.AppCompatActivity")
	assert.True(t, h.IsSubtype(activity, classify.ActivityType), "memo must be invalidated on Add")
	assert.True(t, h.IsSubtype(activity, classify.ContextType))
	assert.True(t, h.IsSubtype(activity, classify.ObjectType))
	assert.False(t, h.IsSubtype(activity, classify.ParcelableType))

	h.Add("com.example.A", "com.example.B")
	h.Add("com.example.B", "com.example.A")
	assert.False(t, h.IsSubtype(meta.MustParseTypeRef("com.example.A"), classify.SerializableType), "cycles terminate")

	assert.False(t, h.IsSubtype(meta.MustParseTypeRef("int"), classify.ObjectType))
	assert.True(t, h.Knows("com.example.A"))
	assert.False(t, h.Knows("com.example.C"))
}

func TestHierarchyUnresolved(t *testing.T) {
	h := classify.NewHierarchy()
	h.Add("com.example.HomeActivity", "com.example.base.BaseActivity", "java.io.Serializable")
	h.Add("com.example.ListActivity", "com.example.base.Tracked", "com.example.HomeActivity")
	h.Add("com.example.base.Tracked")

	assert.Equal(t, []string{"com.example.base.BaseActivity"}, h.Unresolved("com.example.ListActivity"))
	assert.Empty(t, h.Unresolved(classify.ActivityType))
	assert.Empty(t, h.Unresolved("com.example.Missing"))
}
