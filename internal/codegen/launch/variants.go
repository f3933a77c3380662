// Package launch turns scanned routes into launch method signatures and
// their bodies, expressed as a small language-neutral IR that the
// per-language printers render.
package launch

import (
	"fmt"
	"strings"

	"github.com/Alia5/launchgen/internal/codegen/common"
	"github.com/Alia5/launchgen/internal/codegen/generror"
	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// MethodPrefix is prepended to the screen's simple name.
const MethodPrefix = "launch"

// Variants builds the launch signatures for one screen:
//  1. required fields only (possibly none),
//  2. required then optional fields, when any optional field exists,
//  3. one single-parameter method per standalone field, scanning required
//     then optional fields.
//
// All variants share the name launch<Screen>.
func Variants(r meta.RouteDeclaration) []meta.LaunchMethodSpec {
	name := MethodPrefix + r.Screen
	required := r.RequiredFields()
	optional := r.OptionalFields()

	specs := []meta.LaunchMethodSpec{{
		MethodName: name,
		RoutePath:  r.Path,
		Screen:     r.Screen,
		Variant:    meta.VariantRequired,
		Parameters: required,
	}}

	all := make([]meta.FieldModel, 0, len(required)+len(optional))
	all = append(all, required...)
	all = append(all, optional...)
	if len(optional) > 0 {
		specs = append(specs, meta.LaunchMethodSpec{
			MethodName: name,
			RoutePath:  r.Path,
			Screen:     r.Screen,
			Variant:    meta.VariantAll,
			Parameters: all,
		})
	}

	for _, f := range all {
		if !f.Standalone {
			continue
		}
		specs = append(specs, meta.LaunchMethodSpec{
			MethodName: name,
			RoutePath:  r.Path,
			Screen:     r.Screen,
			Variant:    meta.VariantStandalone,
			Parameters: []meta.FieldModel{f},
		})
	}
	return specs
}

// Plan collects the variants of every route into the module's container,
// keeping route order. Overloads must stay resolvable, so:
//   - a variant with exactly the same parameters as an earlier one of the
//     same screen is dropped,
//   - a standalone variant whose erased signature clashes with an earlier
//     one is renamed launch<Screen>By<Field>,
//   - any remaining clash (e.g. two screens with the same simple name) is a
//     validation error.
func Plan(moduleName string, routes []meta.RouteDeclaration) (meta.ModuleOutput, error) {
	className, err := common.ContainerName(moduleName)
	if err != nil {
		return meta.ModuleOutput{}, err
	}
	out := meta.ModuleOutput{
		ModuleName:       moduleName,
		ClassName:        className,
		GeneratedMethods: []meta.LaunchMethodSpec{},
	}

	type owner struct {
		screen string
		exact  string
	}
	taken := map[string]owner{} // method name + erased signature
	for _, r := range routes {
		for _, spec := range Variants(r) {
			key := signatureKey(spec.MethodName, spec.Parameters)
			if prev, ok := taken[key]; ok && prev.screen == r.Class {
				if prev.exact == exactKey(spec.Parameters) {
					continue
				}
				if spec.Variant == meta.VariantStandalone {
					spec.MethodName += "By" + common.Capitalize(spec.Parameters[0].Name)
					key = signatureKey(spec.MethodName, spec.Parameters)
				}
			}
			if prev, ok := taken[key]; ok {
				return meta.ModuleOutput{}, generror.ErrRoute(r.Class, "",
					fmt.Sprintf("launch method %s(%s) clashes with one generated for %s",
						spec.MethodName, strings.Join(erased(spec.Parameters), ", "), prev.screen))
			}
			taken[key] = owner{screen: r.Class, exact: exactKey(spec.Parameters)}
			out.GeneratedMethods = append(out.GeneratedMethods, spec)
		}
	}
	return out, nil
}

func erased(params []meta.FieldModel) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Type.Erased()
	}
	return out
}

func signatureKey(name string, params []meta.FieldModel) string {
	return name + "(" + strings.Join(erased(params), ",") + ")"
}

func exactKey(params []meta.FieldModel) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.TypeName + " " + p.Name
	}
	return strings.Join(parts, ",")
}
