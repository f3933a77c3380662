package meta

// TypeKind enumerates the value kinds that can cross the navigation boundary.
type TypeKind string

const (
	KindBoolean      TypeKind = "boolean"
	KindByte         TypeKind = "byte"
	KindShort        TypeKind = "short"
	KindInt          TypeKind = "int"
	KindLong         TypeKind = "long"
	KindChar         TypeKind = "char"
	KindFloat        TypeKind = "float"
	KindDouble       TypeKind = "double"
	KindString       TypeKind = "string"
	KindSerializable TypeKind = "serializable"
	KindParcelable   TypeKind = "parcelable"
	KindObject       TypeKind = "object"
)

// IsPrimitive reports whether the kind is carried as a primitive value.
func (k TypeKind) IsPrimitive() bool {
	switch k {
	case KindBoolean, KindByte, KindShort, KindInt, KindLong, KindChar, KindFloat, KindDouble:
		return true
	}
	return false
}

// FieldModel is an injected field after name resolution and classification.
type FieldModel struct {
	Name       string   `json:"name"`
	Type       TypeRef  `json:"-"`
	TypeName   string   `json:"type"`
	Kind       TypeKind `json:"kind"`
	Required   bool     `json:"required"`
	Standalone bool     `json:"standalone"`
}

// RouteDeclaration is one navigable screen with its injected fields in
// encounter order.
type RouteDeclaration struct {
	Path   string       `json:"path"`
	Screen string       `json:"screen"` // simple class name, e.g. "TestActivity"
	Class  string       `json:"class"`  // fully-qualified class name
	Fields []FieldModel `json:"fields"`
}

// RequiredFields returns the required partition in encounter order.
func (r RouteDeclaration) RequiredFields() []FieldModel {
	return r.partition(true)
}

// OptionalFields returns the optional partition in encounter order.
func (r RouteDeclaration) OptionalFields() []FieldModel {
	return r.partition(false)
}

func (r RouteDeclaration) partition(required bool) []FieldModel {
	out := []FieldModel{}
	for _, f := range r.Fields {
		if f.Required == required {
			out = append(out, f)
		}
	}
	return out
}

// VariantKind tells which policy rule produced a launch method.
type VariantKind string

const (
	VariantRequired   VariantKind = "required"
	VariantAll        VariantKind = "all"
	VariantStandalone VariantKind = "standalone"
)

// LaunchMethodSpec is one callable launch signature.
type LaunchMethodSpec struct {
	MethodName string       `json:"methodName"`
	RoutePath  string       `json:"routePath"`
	Screen     string       `json:"screen"`
	Variant    VariantKind  `json:"variant"`
	Parameters []FieldModel `json:"parameters"`
}

// ModuleOutput is everything generated for one build module.
type ModuleOutput struct {
	ModuleName       string             `json:"moduleName"`
	ClassName        string             `json:"className"`
	GeneratedMethods []LaunchMethodSpec `json:"generatedMethods"`
}
