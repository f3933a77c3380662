// Package classify maps declared field types onto the fixed set of kinds a
// parameter bag can carry.
package classify

import (
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

var primitiveKinds = map[string]meta.TypeKind{
	"boolean": meta.KindBoolean,
	"byte":    meta.KindByte,
	"short":   meta.KindShort,
	"int":     meta.KindInt,
	"long":    meta.KindLong,
	"char":    meta.KindChar,
	"float":   meta.KindFloat,
	"double":  meta.KindDouble,
}

var boxedKinds = map[string]meta.TypeKind{
	"java.lang.Boolean":   meta.KindBoolean,
	"java.lang.Byte":      meta.KindByte,
	"java.lang.Short":     meta.KindShort,
	"java.lang.Integer":   meta.KindInt,
	"java.lang.Long":      meta.KindLong,
	"java.lang.Character": meta.KindChar,
	"java.lang.Float":     meta.KindFloat,
	"java.lang.Double":    meta.KindDouble,
	StringType:            meta.KindString,
}

// Classifier is total: every type maps to exactly one kind.
type Classifier struct {
	hierarchy *Hierarchy
}

func New(h *Hierarchy) *Classifier {
	return &Classifier{hierarchy: h}
}

// Classify resolves the kind of a declared type. Parcelable is checked
// before Serializable, so a type implementing both is Parcelable.
func (c *Classifier) Classify(t meta.TypeRef) meta.TypeKind {
	if t.IsPrimitive() {
		return primitiveKinds[t.Name]
	}
	if t.Dims == 0 && len(t.Args) == 0 {
		if k, ok := boxedKinds[t.Name]; ok {
			return k
		}
	}
	if c.hierarchy.IsSubtype(t, ParcelableType) {
		return meta.KindParcelable
	}
	if c.hierarchy.IsSubtype(t, SerializableType) {
		return meta.KindSerializable
	}
	return meta.KindObject
}
