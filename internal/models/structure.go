package models

import (
	"slices"
	"strings"
)

// DefaultStructure is used for any title without a canonical entry.
var DefaultStructure = []string{"Intro"}

// KnownStructures maps normalized song titles to their canonical practice structure.
//
// Add entries here rather than special casing titles in code.
var KnownStructures = map[string][]string{
	"breed": {"Intro", "Verse 1", "Chorus", "Verse 2", "Chorus", "Bridge", "Verse 3", "Chorus 3", "Outro"},
}

// NormalizeTitle is the key format of [KnownStructures].
func NormalizeTitle(title string) string {
	return strings.ToLower(title)
}

// StructureFor returns a fresh copy of the canonical structure for title from [KnownStructures].
func StructureFor(title string) []string {
	return lookupStructure(KnownStructures, title)
}

func lookupStructure(structures map[string][]string, title string) []string {
	if s, ok := structures[NormalizeTitle(title)]; ok {
		return slices.Clone(s)
	}
	return slices.Clone(DefaultStructure)
}
