package scanner

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/Alia5/launchgen/internal/codegen/classify"
	"github.com/Alia5/launchgen/internal/codegen/generror"
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// StandaloneTag is the desc value marking a field for its own launch method.
const StandaloneTag = "ALONE"

// ObjectPolicy decides what happens to fields classified as OBJECT, which
// the parameter bag cannot carry.
type ObjectPolicy string

const (
	// ObjectSkip keeps the parameter but emits no bag insertion for it.
	ObjectSkip ObjectPolicy = "skip"
	// ObjectFail rejects the declaration.
	ObjectFail ObjectPolicy = "fail"
)

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "_": true,
}

// RouteScanner filters route declarations down to navigable screens and
// classifies their injected fields.
type RouteScanner struct {
	hierarchy    *classify.Hierarchy
	classifier   *classify.Classifier
	logger       *slog.Logger
	screenType   string
	objectPolicy ObjectPolicy
}

func NewRouteScanner(logger *slog.Logger, h *classify.Hierarchy, policy ObjectPolicy) *RouteScanner {
	if policy == "" {
		policy = ObjectSkip
	}
	return &RouteScanner{
		hierarchy:    h,
		classifier:   classify.New(h),
		logger:       logger,
		screenType:   classify.ActivityType,
		objectPolicy: policy,
	}
}

// Scan registers the table's types with the hierarchy, then returns one
// RouteDeclaration per screen in table order. Declarations that are not
// screens (providers, fragments, ...) are skipped. Any invalid declaration
// fails the whole scan.
func (s *RouteScanner) Scan(table *meta.Table) ([]meta.RouteDeclaration, error) {
	s.hierarchy.AddAll(table.Types)
	for _, d := range table.Declarations {
		s.hierarchy.Add(d.Class, d.Supertypes...)
	}

	var routes []meta.RouteDeclaration
	var errs []error
	for _, d := range table.Declarations {
		if !s.hierarchy.IsSubtype(meta.TypeRef{Name: d.Class}, s.screenType) {
			if unknown := s.hierarchy.Unresolved(d.Class); len(unknown) > 0 {
				s.logger.Warn("Skipping route target with unscanned supertypes; add their sources or a manifest types entry",
					"class", d.Class, "path", d.Path, "unknown", unknown)
				continue
			}
			s.logger.Debug("Skipping non-screen route target", "class", d.Class, "path", d.Path)
			continue
		}
		route, err := s.scanDeclaration(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.logger.Debug("Scanned route", "class", d.Class, "path", route.Path, "fields", len(route.Fields))
		routes = append(routes, route)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return routes, nil
}

func (s *RouteScanner) scanDeclaration(d meta.Declaration) (meta.RouteDeclaration, error) {
	route := meta.RouteDeclaration{
		Path:   d.Path,
		Screen: d.SimpleName(),
		Class:  d.Class,
		Fields: []meta.FieldModel{},
	}
	if d.Path == "" {
		return route, generror.ErrRoute(d.Class, d.Source, "route path is empty")
	}

	seen := make(map[string]bool, len(d.Fields))
	for _, fd := range d.Fields {
		name := fd.EffectiveName()
		switch {
		case name == "":
			return route, generror.ErrField(d.Class, fd.Field, d.Source, "field name is empty")
		case !IsIdentifier(name):
			return route, generror.ErrField(d.Class, fd.Field, d.Source, fmt.Sprintf("name %q is not a valid parameter identifier", name))
		case seen[name]:
			return route, generror.ErrField(d.Class, fd.Field, d.Source, fmt.Sprintf("duplicate field name %q", name))
		}
		seen[name] = true

		ref, err := meta.ParseTypeRef(fd.Type)
		if err != nil {
			return route, generror.ErrField(d.Class, fd.Field, d.Source, err.Error())
		}
		kind := s.classifier.Classify(ref)
		if kind == meta.KindObject {
			if s.objectPolicy == ObjectFail {
				return route, generror.ErrField(d.Class, fd.Field, d.Source,
					fmt.Sprintf("type %s cannot be carried by the parameter bag", ref))
			}
			s.logger.Warn("Field type cannot be carried by the parameter bag; no insertion will be emitted",
				"class", d.Class, "field", name, "type", ref.String())
		}

		route.Fields = append(route.Fields, meta.FieldModel{
			Name:       name,
			Type:       ref,
			TypeName:   ref.String(),
			Kind:       kind,
			Required:   fd.IsRequired(),
			Standalone: fd.Desc == StandaloneTag,
		})
	}
	return route, nil
}

// IsIdentifier reports whether name is a usable, non-keyword Java identifier.
func IsIdentifier(name string) bool {
	if javaKeywords[name] {
		return false
	}
	for i, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return name != ""
}
