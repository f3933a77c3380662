package launch

import (
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// Navigator describes the external dispatcher the generated code calls as
// Class.Instance().build(path).with(bag).Navigate().
type Navigator struct {
	Class    string
	Instance string
	Navigate string
}

// Unit is one module's generated container, ready for a language printer.
type Unit struct {
	Module      meta.ModuleOutput
	Package     string
	Methods     []Method
	ContextType string
	BundleType  string
	Navigator   Navigator
	Version     string
	Digest      string
}

// Source is a rendered compilation unit. Path is relative to the output
// root, e.g. "com/example/launch/UserActivityLaunch.java".
type Source struct {
	Path    string
	Content []byte
}
