package kotlin_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/launchgen/internal/codegen/generator/kotlin"
	"github.com/Alia5/launchgen/internal/codegen/launch"
	"github.com/Alia5/launchgen/internal/codegen/meta"
	lgtest "github.com/Alia5/launchgen/internal/testing"
)

func field(name, typ string, kind meta.TypeKind, required bool) meta.FieldModel {
	return meta.FieldModel{
		Name: name, Type: meta.MustParseTypeRef(typ), TypeName: typ,
		Kind: kind, Required: required,
	}
}

func unit(t *testing.T, pkg string, routes ...meta.RouteDeclaration) *launch.Unit {
	t.Helper()
	out, err := launch.Plan("app", routes)
	require.NoError(t, err)
	return &launch.Unit{
		Module:      out,
		Package:     pkg,
		Methods:     launch.EmitAll(out),
		ContextType: "android.content.Context",
		BundleType:  "android.os.Bundle",
		Navigator: launch.Navigator{
			Class:    "com.alibaba.android.arouter.launcher.ARouter",
			Instance: "getInstance",
			Navigate: "navigation",
		},
		Version: "1.0.0",
	}
}

func discard() *slog.Logger { return lgtest.DiscardLogger() }

const expectedTestActivity = `/*
 * DO NOT EDIT THIS FILE!!! IT WAS GENERATED BY LAUNCHGEN.
 * Generator version: 1.0.0
 */
package com.alibaba.android.arouter.launch

import android.content.Context
import android.os.Bundle
import com.alibaba.android.arouter.launcher.ARouter

/**
 * DO NOT EDIT THIS FILE!!! IT WAS GENERATED BY LAUNCHGEN.
 */
object AppActivityLaunch {
    @JvmStatic
    fun launchTestActivity(context: Context, name: String?) {
        val bundle = Bundle()
        bundle.putString("name", name)
        ARouter.getInstance().build("/app/test").with(bundle).navigation()
    }

    @JvmStatic
    fun launchTestActivity(context: Context, name: String?, age: Int) {
        val bundle = Bundle()
        bundle.putString("name", name)
        bundle.putInt("age", age)
        ARouter.getInstance().build("/app/test").with(bundle).navigation()
    }
}
`

func TestGenerate(t *testing.T) {
	u := unit(t, "com.alibaba.android.arouter.launch", meta.RouteDeclaration{
		Path: "/app/test", Screen: "TestActivity", Class: "com.example.app.TestActivity",
		Fields: []meta.FieldModel{
			field("name", "java.lang.String", meta.KindString, true),
			field("age", "int", meta.KindInt, false),
		},
	})
	src, err := kotlin.Generate(discard(), u)
	require.NoError(t, err)
	assert.Equal(t, "com/alibaba/android/arouter/launch/AppActivityLaunch.kt", src.Path)
	assert.Equal(t, expectedTestActivity, string(src.Content))
}

const expectedBoxed = `    @JvmStatic
    fun launchCountActivity(context: Context, count: Int?, enabled: Boolean?, size: Long) {
        val bundle = Bundle()
        count?.let { bundle.putInt("count", it) }
        enabled?.let { bundle.putBoolean("enabled", it) }
        bundle.putLong("size", size)
        ARouter.getInstance().build("/app/count").with(bundle).navigation()
    }
`

func TestGenerateBoxedPrimitives(t *testing.T) {
	u := unit(t, "com.alibaba.android.arouter.launch", meta.RouteDeclaration{
		Path: "/app/count", Screen: "CountActivity", Class: "com.example.app.CountActivity",
		Fields: []meta.FieldModel{
			field("count", "java.lang.Integer", meta.KindInt, true),
			field("enabled", "java.lang.Boolean", meta.KindBoolean, true),
			field("size", "long", meta.KindLong, true),
		},
	})
	src, err := kotlin.Generate(discard(), u)
	require.NoError(t, err)
	out := string(src.Content)

	assert.Contains(t, out, expectedBoxed)
	assert.NotContains(t, out, "bundle.putInt(\"count\", count)")
}

func TestGenerateTypes(t *testing.T) {
	u := unit(t, "com.example.object", meta.RouteDeclaration{
		Path: "/shop/$cart", Screen: "CartActivity", Class: "com.example.shop.CartActivity",
		Fields: []meta.FieldModel{
			field("tags", "java.util.ArrayList<java.lang.String>", meta.KindSerializable, true),
			field("ids", "int[]", meta.KindSerializable, true),
			field("users", "com.example.model.User[]", meta.KindSerializable, true),
			field("matrix", "double[][]", meta.KindSerializable, true),
			field("in", "java.lang.Integer", meta.KindInt, true),
			field("extras", "java.util.Map<?, ? super com.example.model.User>", meta.KindObject, true),
			field("any", "java.lang.Object", meta.KindObject, true),
		},
	})
	src, err := kotlin.Generate(discard(), u)
	require.NoError(t, err)
	out := string(src.Content)

	assert.Equal(t, "com/example/object/AppActivityLaunch.kt", src.Path)
	assert.Contains(t, out, "package com.example.`object`\n")
	assert.Contains(t, out, "import java.util.ArrayList\n")
	assert.Contains(t, out, "import com.example.model.User\n")
	assert.NotContains(t, out, "import java.lang.")
	assert.Contains(t, out, "fun launchCartActivity(context: Context, tags: ArrayList<String>?, ids: IntArray?, "+
		"users: Array<User>?, matrix: Array<DoubleArray>?, `in`: Int?, extras: Map<*, in User>?, any: Any?) {")
	assert.Contains(t, out, "        `in`?.let { bundle.putInt(\"in\", it) }\n")
	assert.Contains(t, out, "        // not carried by the bundle: extras, any\n")
	assert.Contains(t, out, "build(\"/shop/\\$cart\")")
}
