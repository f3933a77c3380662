package common

import (
	"fmt"
	"strings"
)

// WarningTips heads every generated unit.
const WarningTips = "DO NOT EDIT THIS FILE!!! IT WAS GENERATED BY LAUNCHGEN."

// FileHeader renders the generated-file banner as a block comment, valid in
// both Java and Kotlin. It carries no timestamp so reruns are byte-identical.
func FileHeader(version, digest string) string {
	lines := []string{
		WarningTips,
		fmt.Sprintf("Generator version: %s", version),
	}
	if digest != "" {
		lines = append(lines, fmt.Sprintf("Input digest: %s", digest))
	}
	var b strings.Builder
	b.WriteString("/*\n")
	for _, l := range lines {
		b.WriteString(" * " + l + "\n")
	}
	b.WriteString(" */\n")
	return b.String()
}
