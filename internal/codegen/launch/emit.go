package launch

import (
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// Default local names; they gain a trailing underscore when a parameter
// already uses them.
const (
	contextName = "context"
	bagName     = "bundle"
)

// Statement is one line of a launch method body.
type Statement interface {
	statement()
}

// NewBag declares and constructs the parameter bag.
type NewBag struct {
	Var string
}

// Put inserts one parameter into the bag under its own name.
type Put struct {
	Bag   string
	Op    string // bag method, e.g. "putString"
	Key   string
	Value string
	Kind  meta.TypeKind
}

// Dispatch hands the bag to the navigator for the route path.
type Dispatch struct {
	Path string
	Bag  string
}

func (NewBag) statement()   {}
func (Put) statement()      {}
func (Dispatch) statement() {}

// Param is a method parameter after the context parameter.
type Param struct {
	Name string
	Type meta.TypeRef
	Kind meta.TypeKind
}

// Method is a fully emitted launch method.
type Method struct {
	Name    string
	Screen  string
	Path    string
	Variant meta.VariantKind
	Context string // name of the leading context parameter
	Params  []Param
	Body    []Statement
	Omitted []string // parameters the bag cannot carry
}

var putOps = map[meta.TypeKind]string{
	meta.KindBoolean:      "putBoolean",
	meta.KindByte:         "putByte",
	meta.KindShort:        "putShort",
	meta.KindInt:          "putInt",
	meta.KindLong:         "putLong",
	meta.KindChar:         "putChar",
	meta.KindFloat:        "putFloat",
	meta.KindDouble:       "putDouble",
	meta.KindString:       "putString",
	meta.KindSerializable: "putSerializable",
	meta.KindParcelable:   "putParcelable",
}

// PutOp returns the bag insertion method for a kind. OBJECT has none.
func PutOp(kind meta.TypeKind) (string, bool) {
	op, ok := putOps[kind]
	return op, ok
}

// Emit renders a spec into a method: a fresh bag, one insertion per
// parameter in order, then a single dispatch with the literal route path.
// OBJECT parameters stay in the signature but get no insertion.
func Emit(spec meta.LaunchMethodSpec) Method {
	used := make(map[string]bool, len(spec.Parameters))
	for _, p := range spec.Parameters {
		used[p.Name] = true
	}
	ctx := freeName(contextName, used)
	used[ctx] = true
	bag := freeName(bagName, used)

	m := Method{
		Name:    spec.MethodName,
		Screen:  spec.Screen,
		Path:    spec.RoutePath,
		Variant: spec.Variant,
		Context: ctx,
		Params:  make([]Param, 0, len(spec.Parameters)),
		Body:    []Statement{NewBag{Var: bag}},
	}
	for _, p := range spec.Parameters {
		m.Params = append(m.Params, Param{Name: p.Name, Type: p.Type, Kind: p.Kind})
		op, ok := PutOp(p.Kind)
		if !ok {
			m.Omitted = append(m.Omitted, p.Name)
			continue
		}
		m.Body = append(m.Body, Put{Bag: bag, Op: op, Key: p.Name, Value: p.Name, Kind: p.Kind})
	}
	m.Body = append(m.Body, Dispatch{Path: spec.RoutePath, Bag: bag})
	return m
}

// EmitAll emits every method of a module in order.
func EmitAll(out meta.ModuleOutput) []Method {
	methods := make([]Method, 0, len(out.GeneratedMethods))
	for _, spec := range out.GeneratedMethods {
		methods = append(methods, Emit(spec))
	}
	return methods
}

func freeName(name string, used map[string]bool) string {
	for used[name] {
		name += "_"
	}
	return name
}
