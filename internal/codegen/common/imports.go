package common

import (
	"sort"
	"strings"

	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// ImportSet decides, for one generated unit, which qualified type names are
// written by their simple name and which must stay qualified. Names that
// need no import (same package, or implicit such as java.lang) claim their
// simple name first; the rest claim in lexical order. A simple name that is
// already claimed forces the later type to stay qualified.
type ImportSet struct {
	short   map[string]string
	imports []string
}

// NewImportSet resolves names for a unit in package pkg. reserved holds
// simple names declared by the unit itself. implicit may be nil.
func NewImportSet(pkg string, reserved, names []string, implicit func(qualified string) bool) *ImportSet {
	set := &ImportSet{short: make(map[string]string)}
	claimed := make(map[string]string)
	for _, r := range reserved {
		claimed[r] = ""
	}

	uniq := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		uniq = append(uniq, n)
	}
	sort.Strings(uniq)

	free := func(q string) bool {
		return meta.PackageOf(q) == pkg || (implicit != nil && implicit(q))
	}
	claim := func(q string) bool {
		simple := meta.SimpleName(q)
		if owner, ok := claimed[simple]; ok && owner != q {
			return false
		}
		claimed[simple] = q
		set.short[q] = simple
		return true
	}

	for _, q := range uniq {
		if !strings.Contains(q, ".") {
			set.short[q] = q
			continue
		}
		if free(q) {
			claim(q)
		}
	}
	for _, q := range uniq {
		if _, done := set.short[q]; done || free(q) {
			continue
		}
		if claim(q) {
			set.imports = append(set.imports, q)
		}
	}
	return set
}

// Name returns how q is written in the unit.
func (s *ImportSet) Name(q string) string {
	if n, ok := s.short[q]; ok {
		return n
	}
	return q
}

// Imports returns the qualified names to import, sorted.
func (s *ImportSet) Imports() []string {
	return s.imports
}
