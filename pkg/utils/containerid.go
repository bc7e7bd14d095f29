package utils

import (
	"regexp"
	"strings"
)

// containerIDPattern matches ISO 6346 style identifiers: four letters
// (owner code + category) followed by six serial digits and a check digit.
var containerIDPattern = regexp.MustCompile(`^[A-Z]{4}\d{7}$`)

// ownerByPrefix maps well-known owner codes to carrier names.
var ownerByPrefix = map[string]string{
	"MSCU": "MSC",
	"MSDU": "MSC",
	"MAEU": "Maersk",
	"MRKU": "Maersk",
	"CMAU": "CMA CGM",
	"CGMU": "CMA CGM",
	"COSU": "COSCO",
	"HLCU": "Hapag-Lloyd",
	"HLXU": "Hapag-Lloyd",
	"ONEU": "Ocean Network Express",
	"EMCU": "Evergreen",
	"EGHU": "Evergreen",
	"ZIMU": "ZIM",
	"HMMU": "HMM",
	"YMLU": "Yang Ming",
}

// NormalizeContainerID strips separators and upper-cases a container id.
func NormalizeContainerID(id string) string {
	s := strings.ToUpper(strings.TrimSpace(id))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// IsContainerID reports whether the normalized value is a valid container id.
func IsContainerID(id string) bool {
	return containerIDPattern.MatchString(NormalizeContainerID(id))
}

// DeriveOwnerFromContainerID returns the carrier name for a known owner
// prefix, or the prefix itself so the record still carries provenance.
func DeriveOwnerFromContainerID(id string) string {
	s := NormalizeContainerID(id)
	if len(s) < 4 {
		return ""
	}
	prefix := s[:4]
	if owner, ok := ownerByPrefix[prefix]; ok {
		return owner
	}
	return prefix
}
