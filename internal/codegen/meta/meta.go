package meta

// Table is the declarative metadata produced by the upstream scan step.
// Shared between the scanners, the manifest loader and the generator.
// Order of Declarations and Types is significant: it drives the order of
// generated methods, so it is never rebuilt from a map.
type Table struct {
	Types        []TypeDecl    `json:"types,omitempty" yaml:"types,omitempty" toml:"types,omitempty"`
	Declarations []Declaration `json:"routes,omitempty" yaml:"routes,omitempty" toml:"routes,omitempty"`
}

// TypeDecl records the direct supertypes of a named type.
type TypeDecl struct {
	Name       string   `json:"name" yaml:"name" toml:"name"`                                           // e.g., "com.example.User"
	Supertypes []string `json:"supertypes,omitempty" yaml:"supertypes,omitempty" toml:"supertypes,omitempty"` // fully-qualified
}

// Declaration is a class carrying a route annotation.
type Declaration struct {
	Class      string      `json:"class" yaml:"class" toml:"class"` // fully-qualified, e.g. "com.example.app.TestActivity"
	Supertypes []string    `json:"supertypes,omitempty" yaml:"supertypes,omitempty" toml:"supertypes,omitempty"`
	Path       string      `json:"path" yaml:"path" toml:"path"`
	Fields     []FieldDecl `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
	Source     string      `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"` // file:line of the declaration
}

// FieldDecl is a field carrying the injection annotation.
type FieldDecl struct {
	Field    string `json:"field" yaml:"field" toml:"field"`                            // declared identifier
	Type     string `json:"type" yaml:"type" toml:"type"`                               // resolved type, e.g. "java.util.ArrayList<java.lang.String>"
	Name     string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"` // annotation override
	Required *bool  `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Desc     string `json:"desc,omitempty" yaml:"desc,omitempty" toml:"desc,omitempty"`
}

// SimpleName returns the unqualified class name.
func (d Declaration) SimpleName() string {
	return SimpleName(d.Class)
}

// EffectiveName is the annotation override, else the declared identifier.
func (f FieldDecl) EffectiveName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Field
}

// IsRequired defaults to true when the attribute is absent.
func (f FieldDecl) IsRequired() bool {
	return f.Required == nil || *f.Required
}

// Merge appends other's entries after t's, keeping both orders.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	t.Types = append(t.Types, other.Types...)
	t.Declarations = append(t.Declarations, other.Declarations...)
}

// SimpleName strips the package qualifier ("a.b.C" -> "C").
func SimpleName(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}

// PackageOf returns the package qualifier ("a.b.C" -> "a.b").
func PackageOf(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[:i]
		}
	}
	return ""
}
