package launch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/launchgen/internal/codegen/generror"
	"github.com/Alia5/launchgen/internal/codegen/launch"
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

func field(name, typ string, kind meta.TypeKind, required, standalone bool) meta.FieldModel {
	return meta.FieldModel{
		Name:       name,
		Type:       meta.MustParseTypeRef(typ),
		TypeName:   typ,
		Kind:       kind,
		Required:   required,
		Standalone: standalone,
	}
}

// testActivity is the screen from the README: one required string, one
// optional int and one optional standalone int.
func testActivity() meta.RouteDeclaration {
	return meta.RouteDeclaration{
		Path:   "/app/test",
		Screen: "TestActivity",
		Class:  "com.example.app.TestActivity",
		Fields: []meta.FieldModel{
			field("name", "java.lang.String", meta.KindString, true, false),
			field("age", "int", meta.KindInt, false, false),
			field("id", "int", meta.KindInt, false, true),
		},
	}
}

func paramNames(spec meta.LaunchMethodSpec) []string {
	out := []string{}
	for _, p := range spec.Parameters {
		out = append(out, p.Name)
	}
	return out
}

func TestVariantsExampleScenario(t *testing.T) {
	specs := launch.Variants(testActivity())
	require.Len(t, specs, 3)

	expected := []struct {
		variant meta.VariantKind
		params  []string
	}{
		{meta.VariantRequired, []string{"name"}},
		{meta.VariantAll, []string{"name", "age", "id"}},
		{meta.VariantStandalone, []string{"id"}},
	}
	for i, e := range expected {
		assert.Equal(t, "launchTestActivity", specs[i].MethodName)
		assert.Equal(t, "/app/test", specs[i].RoutePath)
		assert.Equal(t, e.variant, specs[i].Variant)
		assert.Equal(t, e.params, paramNames(specs[i]))
	}
}

func TestVariantCounts(t *testing.T) {
	tests := []struct {
		name     string
		fields   []meta.FieldModel
		expected int
	}{
		{name: "no fields", fields: nil, expected: 1},
		{name: "required only", fields: []meta.FieldModel{
			field("a", "int", meta.KindInt, true, false),
			field("b", "long", meta.KindLong, true, false),
		}, expected: 1},
		{name: "one optional", fields: []meta.FieldModel{
			field("a", "int", meta.KindInt, true, false),
			field("b", "long", meta.KindLong, false, false),
		}, expected: 2},
		{name: "one optional standalone", fields: []meta.FieldModel{
			field("a", "int", meta.KindInt, true, false),
			field("b", "long", meta.KindLong, false, true),
		}, expected: 3},
		{name: "required standalone without optionals", fields: []meta.FieldModel{
			field("a", "int", meta.KindInt, true, false),
			field("b", "long", meta.KindLong, true, true),
		}, expected: 2},
		{name: "two standalone", fields: []meta.FieldModel{
			field("a", "int", meta.KindInt, false, true),
			field("b", "long", meta.KindLong, true, true),
		}, expected: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := meta.RouteDeclaration{Path: "/a/b", Screen: "BActivity", Class: "a.BActivity", Fields: tt.fields}
			assert.Len(t, launch.Variants(r), tt.expected)
		})
	}
}

func TestVariantsStandaloneOrder(t *testing.T) {
	r := meta.RouteDeclaration{Path: "/a/b", Screen: "B", Class: "a.B", Fields: []meta.FieldModel{
		field("opt", "int", meta.KindInt, false, true),
		field("req", "long", meta.KindLong, true, true),
	}}
	specs := launch.Variants(r)
	require.Len(t, specs, 4)
	assert.Equal(t, []string{"req"}, paramNames(specs[0]))
	assert.Equal(t, []string{"req", "opt"}, paramNames(specs[1]))
	assert.Equal(t, []string{"req"}, paramNames(specs[2]), "required standalone fields come first")
	assert.Equal(t, []string{"opt"}, paramNames(specs[3]))
}

func TestPlan(t *testing.T) {
	out, err := launch.Plan("app", []meta.RouteDeclaration{testActivity()})
	require.NoError(t, err)
	assert.Equal(t, "app", out.ModuleName)
	assert.Equal(t, "AppActivityLaunch", out.ClassName)
	require.Len(t, out.GeneratedMethods, 3)
	for _, m := range out.GeneratedMethods {
		assert.Equal(t, "launchTestActivity", m.MethodName)
	}
}

func TestPlanEmptyModule(t *testing.T) {
	out, err := launch.Plan("user", nil)
	require.NoError(t, err)
	assert.Equal(t, "UserActivityLaunch", out.ClassName)
	assert.Empty(t, out.GeneratedMethods)
	assert.NotNil(t, out.GeneratedMethods)
}

func TestPlanMissingModuleName(t *testing.T) {
	_, err := launch.Plan("", []meta.RouteDeclaration{testActivity()})
	var cerr *generror.ConfigurationError
	require.True(t, errors.As(err, &cerr))
}

func TestPlanDropsIdenticalVariants(t *testing.T) {
	r := meta.RouteDeclaration{Path: "/a/b", Screen: "BActivity", Class: "a.BActivity", Fields: []meta.FieldModel{
		field("id", "int", meta.KindInt, true, true),
	}}
	out, err := launch.Plan("app", []meta.RouteDeclaration{r})
	require.NoError(t, err)
	require.Len(t, out.GeneratedMethods, 1)
	assert.Equal(t, meta.VariantRequired, out.GeneratedMethods[0].Variant)
}

func TestPlanRenamesClashingStandalone(t *testing.T) {
	r := meta.RouteDeclaration{Path: "/a/b", Screen: "BActivity", Class: "a.BActivity", Fields: []meta.FieldModel{
		field("name", "java.lang.String", meta.KindString, true, false),
		field("title", "java.lang.String", meta.KindString, false, true),
	}}
	out, err := launch.Plan("app", []meta.RouteDeclaration{r})
	require.NoError(t, err)
	require.Len(t, out.GeneratedMethods, 3)
	assert.Equal(t, "launchBActivity", out.GeneratedMethods[0].MethodName)
	assert.Equal(t, "launchBActivity", out.GeneratedMethods[1].MethodName)
	assert.Equal(t, "launchBActivityByTitle", out.GeneratedMethods[2].MethodName)
	assert.Equal(t, []string{"title"}, paramNames(out.GeneratedMethods[2]))
}

func TestPlanErasedGenericsClash(t *testing.T) {
	r := meta.RouteDeclaration{Path: "/a/b", Screen: "BActivity", Class: "a.BActivity", Fields: []meta.FieldModel{
		field("names", "java.util.ArrayList<java.lang.String>", meta.KindSerializable, true, false),
		field("ids", "java.util.ArrayList<java.lang.Integer>", meta.KindSerializable, false, true),
	}}
	out, err := launch.Plan("app", []meta.RouteDeclaration{r})
	require.NoError(t, err)
	require.Len(t, out.GeneratedMethods, 3)
	assert.Equal(t, "launchBActivityByIds", out.GeneratedMethods[2].MethodName)
}

func TestPlanCrossScreenClash(t *testing.T) {
	a := meta.RouteDeclaration{Path: "/a/main", Screen: "MainActivity", Class: "com.a.MainActivity", Fields: []meta.FieldModel{}}
	b := meta.RouteDeclaration{Path: "/b/main", Screen: "MainActivity", Class: "com.b.MainActivity", Fields: []meta.FieldModel{}}
	_, err := launch.Plan("app", []meta.RouteDeclaration{a, b})
	require.Error(t, err)
	var verr *generror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "com.b.MainActivity", verr.Route)
	assert.Contains(t, verr.Reason, "com.a.MainActivity")
}

func TestPlanDistinctScreensShareNoNames(t *testing.T) {
	a := meta.RouteDeclaration{Path: "/a/main", Screen: "MainActivity", Class: "com.a.MainActivity"}
	b := meta.RouteDeclaration{Path: "/a/detail", Screen: "DetailActivity", Class: "com.a.DetailActivity", Fields: []meta.FieldModel{
		field("id", "long", meta.KindLong, true, false),
	}}
	out, err := launch.Plan("app", []meta.RouteDeclaration{a, b})
	require.NoError(t, err)
	require.Len(t, out.GeneratedMethods, 2)
	assert.Equal(t, "launchMainActivity", out.GeneratedMethods[0].MethodName)
	assert.Equal(t, "launchDetailActivity", out.GeneratedMethods[1].MethodName)
}

func TestEmit(t *testing.T) {
	specs := launch.Variants(testActivity())

	m := launch.Emit(specs[1])
	assert.Equal(t, "launchTestActivity", m.Name)
	assert.Equal(t, "context", m.Context)
	assert.Empty(t, m.Omitted)
	assert.Equal(t, []launch.Statement{
		launch.NewBag{Var: "bundle"},
		launch.Put{Bag: "bundle", Op: "putString", Key: "name", Value: "name", Kind: meta.KindString},
		launch.Put{Bag: "bundle", Op: "putInt", Key: "age", Value: "age", Kind: meta.KindInt},
		launch.Put{Bag: "bundle", Op: "putInt", Key: "id", Value: "id", Kind: meta.KindInt},
		launch.Dispatch{Path: "/app/test", Bag: "bundle"},
	}, m.Body)

	empty := launch.Emit(meta.LaunchMethodSpec{MethodName: "launchX", RoutePath: "/a/x"})
	assert.Equal(t, []launch.Statement{
		launch.NewBag{Var: "bundle"},
		launch.Dispatch{Path: "/a/x", Bag: "bundle"},
	}, empty.Body)
	assert.Empty(t, empty.Params)
}

func TestEmitPutOps(t *testing.T) {
	tests := []struct {
		kind meta.TypeKind
		op   string
	}{
		{meta.KindBoolean, "putBoolean"},
		{meta.KindByte, "putByte"},
		{meta.KindShort, "putShort"},
		{meta.KindInt, "putInt"},
		{meta.KindLong, "putLong"},
		{meta.KindChar, "putChar"},
		{meta.KindFloat, "putFloat"},
		{meta.KindDouble, "putDouble"},
		{meta.KindString, "putString"},
		{meta.KindSerializable, "putSerializable"},
		{meta.KindParcelable, "putParcelable"},
	}
	for _, tt := range tests {
		op, ok := launch.PutOp(tt.kind)
		assert.True(t, ok, tt.kind)
		assert.Equal(t, tt.op, op)
	}
	_, ok := launch.PutOp(meta.KindObject)
	assert.False(t, ok)
}

func TestEmitOmitsObjectParameters(t *testing.T) {
	m := launch.Emit(meta.LaunchMethodSpec{
		MethodName: "launchMapActivity",
		RoutePath:  "/app/map",
		Parameters: []meta.FieldModel{
			field("points", "java.util.List<java.lang.String>", meta.KindObject, true, false),
			field("zoom", "float", meta.KindFloat, true, false),
		},
	})
	require.Len(t, m.Params, 2, "object parameters stay in the signature")
	assert.Equal(t, []string{"points"}, m.Omitted)
	assert.Equal(t, []launch.Statement{
		launch.NewBag{Var: "bundle"},
		launch.Put{Bag: "bundle", Op: "putFloat", Key: "zoom", Value: "zoom", Kind: meta.KindFloat},
		launch.Dispatch{Path: "/app/map", Bag: "bundle"},
	}, m.Body)
}

func TestEmitAvoidsParameterNames(t *testing.T) {
	m := launch.Emit(meta.LaunchMethodSpec{
		MethodName: "launchX",
		RoutePath:  "/a/x",
		Parameters: []meta.FieldModel{
			field("context", "java.lang.String", meta.KindString, true, false),
			field("bundle", "android.os.Bundle", meta.KindParcelable, true, false),
			field("context_", "int", meta.KindInt, true, false),
		},
	})
	assert.Equal(t, "context__", m.Context)
	assert.Equal(t, launch.NewBag{Var: "bundle_"}, m.Body[0])
	assert.Equal(t, launch.Put{Bag: "bundle_", Op: "putString", Key: "context", Value: "context", Kind: meta.KindString}, m.Body[1])
}

func TestEmitAll(t *testing.T) {
	out, err := launch.Plan("app", []meta.RouteDeclaration{testActivity()})
	require.NoError(t, err)
	methods := launch.EmitAll(out)
	require.Len(t, methods, 3)
	assert.Equal(t, meta.VariantStandalone, methods[2].Variant)
	assert.Equal(t, "TestActivity", methods[2].Screen)
	assert.Equal(t, "/app/test", methods[2].Path)
}
