package classify

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// Well-known type names the generator reasons about.
const (
	ObjectType       = "java.lang.Object"
	StringType       = "java.lang.String"
	SerializableType = "java.io.Serializable"
	CloneableType    = "java.lang.Cloneable"
	ParcelableType   = "android.os.Parcelable"
	ActivityType     = "android.app.Activity"
	ContextType      = "android.content.Context"
	BundleType       = "android.os.Bundle"
	ProviderType     = "com.alibaba.android.arouter.facade.template.IProvider"
)

const memoSize = 4096

// builtin is the slice of the Android/Java class graph that routes commonly
// reference. Scanned sources and manifests extend it.
var builtin = []meta.TypeDecl{
	{Name: ObjectType},
	{Name: SerializableType},
	{Name: CloneableType},
	{Name: "java.lang.Comparable"},
	{Name: "java.lang.CharSequence"},
	{Name: "java.lang.Iterable"},
	{Name: "java.util.Collection", Supertypes: []string{"java.lang.Iterable"}},
	{Name: "java.util.Map"},
	{Name: ParcelableType},
	{Name: ContextType},
	{Name: "java.lang.Number", Supertypes: []string{SerializableType}},
	{Name: "java.lang.Boolean", Supertypes: []string{SerializableType, "java.lang.Comparable"}},
	{Name: "java.lang.Byte", Supertypes: []string{"java.lang.Number", "java.lang.Comparable"}},
	{Name: "java.lang.Short", Supertypes: []string{"java.lang.Number", "java.lang.Comparable"}},
	{Name: "java.lang.Integer", Supertypes: []string{"java.lang.Number", "java.lang.Comparable"}},
	{Name: "java.lang.Long", Supertypes: []string{"java.lang.Number", "java.lang.Comparable"}},
	{Name: "java.lang.Float", Supertypes: []string{"java.lang.Number", "java.lang.Comparable"}},
	{Name: "java.lang.Double", Supertypes: []string{"java.lang.Number", "java.lang.Comparable"}},
	{Name: "java.lang.Character", Supertypes: []string{SerializableType, "java.lang.Comparable"}},
	{Name: StringType, Supertypes: []string{SerializableType, "java.lang.CharSequence", "java.lang.Comparable"}},
	{Name: "java.lang.Enum", Supertypes: []string{SerializableType, "java.lang.Comparable"}},
	{Name: "java.math.BigInteger", Supertypes: []string{"java.lang.Number"}},
	{Name: "java.math.BigDecimal", Supertypes: []string{"java.lang.Number"}},
	{Name: "java.util.Date", Supertypes: []string{SerializableType, CloneableType}},
	{Name: "java.util.ArrayList", Supertypes: []string{"java.util.List", SerializableType, CloneableType}},
	{Name: "java.util.LinkedList", Supertypes: []string{"java.util.List", SerializableType, CloneableType}},
	{Name: "java.util.HashMap", Supertypes: []string{"java.util.Map", SerializableType, CloneableType}},
	{Name: "java.util.LinkedHashMap", Supertypes: []string{"java.util.HashMap"}},
	{Name: "java.util.TreeMap", Supertypes: []string{"java.util.Map", SerializableType, CloneableType}},
	{Name: "java.util.HashSet", Supertypes: []string{"java.util.Set", SerializableType, CloneableType}},
	{Name: "java.util.LinkedHashSet", Supertypes: []string{"java.util.HashSet"}},
	{Name: "java.util.TreeSet", Supertypes: []string{"java.util.Set", SerializableType, CloneableType}},
	{Name: "java.util.List", Supertypes: []string{"java.util.Collection"}},
	{Name: "java.util.Set", Supertypes: []string{"java.util.Collection"}},

	{Name: "android.content.ContextWrapper", Supertypes: []string{ContextType}},
	{Name: "android.view.ContextThemeWrapper", Supertypes: []string{"android.content.ContextWrapper"}},
	{Name: ActivityType, Supertypes: []string{"android.view.ContextThemeWrapper"}},
	{Name: "android.app.ListActivity", Supertypes: []string{ActivityType}},
	{Name: "android.app.ActivityGroup", Supertypes: []string{ActivityType}},
	{Name: "android.preference.PreferenceActivity", Supertypes: []string{"android.app.ListActivity"}},
	{Name: "android.support.v4.app.SupportActivity", Supertypes: []string{ActivityType}},
	{Name: "android.support.v4.app.FragmentActivity", Supertypes: []string{"android.support.v4.app.SupportActivity"}},
	{Name: "android.support.v7.app.AppCompatActivity", Supertypes: []string{"android.support.v4.app.FragmentActivity"}},
	{Name: "androidx.core.app.ComponentActivity", Supertypes: []string{ActivityType}},
	{Name: "androidx.activity.ComponentActivity", Supertypes: []string{"androidx.core.app.ComponentActivity"}},
	{Name: "androidx.fragment.app.FragmentActivity", Supertypes: []string{"androidx.activity.ComponentActivity"}},
	{Name: "androidx.appcompat.app.AppCompatActivity", Supertypes: []string{"androidx.fragment.app.FragmentActivity"}},
	{Name: "android.app.Fragment"},
	{Name: "android.support.v4.app.Fragment"},
	{Name: "androidx.fragment.app.Fragment"},
	{Name: BundleType, Supertypes: []string{ParcelableType, CloneableType}},
	{Name: "android.content.Intent", Supertypes: []string{ParcelableType, CloneableType}},
	{Name: "android.net.Uri", Supertypes: []string{ParcelableType, "java.lang.Comparable"}},
	{Name: "android.graphics.Bitmap", Supertypes: []string{ParcelableType}},
	{Name: "android.graphics.Rect", Supertypes: []string{ParcelableType}},
	{Name: "android.graphics.Point", Supertypes: []string{ParcelableType}},
	{Name: "android.util.SparseArray", Supertypes: []string{CloneableType}},
	{Name: ProviderType},
}

// Hierarchy answers subtype questions over a known set of types. Names that
// were never declared are treated as direct subtypes of java.lang.Object.
// A Hierarchy belongs to one generation run.
type Hierarchy struct {
	supers map[string][]string
	memo   *lru.Cache[string, bool]
}

// NewHierarchy returns a hierarchy seeded with the built-in Android/Java types.
func NewHierarchy() *Hierarchy {
	memo, _ := lru.New[string, bool](memoSize)
	h := &Hierarchy{
		supers: make(map[string][]string),
		memo:   memo,
	}
	h.AddAll(builtin)
	return h
}

// Add records direct supertypes for name. Repeated calls merge supertypes,
// keeping first-seen order.
func (h *Hierarchy) Add(name string, supertypes ...string) {
	existing := h.supers[name]
	for _, s := range supertypes {
		if s == "" || s == name || contains(existing, s) {
			continue
		}
		existing = append(existing, s)
	}
	h.supers[name] = existing
	h.memo.Purge()
}

func (h *Hierarchy) AddAll(decls []meta.TypeDecl) {
	for _, d := range decls {
		h.Add(d.Name, d.Supertypes...)
	}
}

// Knows reports whether name was declared (built-in, scanned or manifest).
func (h *Hierarchy) Knows(name string) bool {
	_, ok := h.supers[name]
	return ok
}

// IsSubtype reports whether t is super or (transitively) extends or
// implements it. Generic arguments are ignored. Arrays are subtypes of
// Object, Cloneable and Serializable only.
func (h *Hierarchy) IsSubtype(t meta.TypeRef, super string) bool {
	if t.IsWildcard() {
		return false
	}
	if t.Dims > 0 {
		return super == ObjectType || super == CloneableType || super == SerializableType
	}
	if meta.IsPrimitiveName(t.Name) {
		return false
	}
	if t.Name == super || super == ObjectType {
		return true
	}

	key := t.Name + "<:" + super
	if v, ok := h.memo.Get(key); ok {
		return v
	}
	v := h.reaches(t.Name, super)
	h.memo.Add(key, v)
	return v
}

func (h *Hierarchy) reaches(from, target string) bool {
	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range h.supers[cur] {
			if s == target {
				return true
			}
			if !seen[s] {
				seen[s] = true
				queue = append(queue, s)
			}
		}
	}
	return false
}

// Unresolved lists the supertypes reachable from name that were never
// declared, in breadth-first order. Subtype answers below them are guesses.
func (h *Hierarchy) Unresolved(name string) []string {
	var out []string
	seen := map[string]bool{name: true}
	queue := []string{name}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range h.supers[cur] {
			if seen[s] {
				continue
			}
			seen[s] = true
			if !h.Knows(s) {
				out = append(out, s)
				continue
			}
			queue = append(queue, s)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
