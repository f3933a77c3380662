package common

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Alia5/launchgen/internal/codegen/generror"
)

// ContainerSuffix is appended to the capitalized module name.
const ContainerSuffix = "ActivityLaunch"

var moduleNameStrip = regexp.MustCompile(`[^0-9a-zA-Z_]+`)

// SanitizeModuleName drops every character that cannot appear in a class
// name, e.g. "user-center" -> "usercenter".
func SanitizeModuleName(name string) string {
	return moduleNameStrip.ReplaceAllString(name, "")
}

// ContainerName derives the generated container's class name:
// "user" -> "UserActivityLaunch".
func ContainerName(moduleName string) (string, error) {
	name := SanitizeModuleName(moduleName)
	if name == "" {
		return "", generror.ErrMissingOption("module-name")
	}
	return SanitizeLeadingDigit(Capitalize(name)) + ContainerSuffix, nil
}

// Capitalize upper-cases only the first letter: "user_center" -> "User_center".
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// SanitizeLeadingDigit prefixes names that start with a digit with "Num"
// to keep identifiers valid in target languages.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Num" + name
	}
	return name
}

// PackagePath turns a dotted package into a slash-separated directory.
func PackagePath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}
