package validate

import "strings"

// DefaultReservedKeywords is the immutable base set of GML keywords that
// can never be used as a rename target. It is never mutated at runtime;
// callers that need to extend it build a derived set with MergeKeywords.
var DefaultReservedKeywords = map[string]struct{}{
	"if": {}, "else": {}, "while": {}, "for": {}, "do": {},
	"switch": {}, "case": {}, "default": {}, "break": {}, "continue": {},
	"return": {}, "function": {}, "var": {}, "globalvar": {}, "enum": {},
	"with": {}, "repeat": {}, "until": {}, "exit": {}, "self": {},
	"other": {}, "all": {}, "noone": {}, "global": {},
}

// MergeKeywords unions DefaultReservedKeywords with extra, lowercasing
// every entry from extra so lookups can compare case-insensitively. The
// returned set is a fresh map; DefaultReservedKeywords is never mutated.
func MergeKeywords(extra []string) map[string]struct{} {
	merged := make(map[string]struct{}, len(DefaultReservedKeywords)+len(extra))
	for k := range DefaultReservedKeywords {
		merged[k] = struct{}{}
	}
	for _, k := range extra {
		merged[strings.ToLower(k)] = struct{}{}
	}
	return merged
}

// IsReserved reports whether the lowercased name is in keywords.
func IsReserved(name string, keywords map[string]struct{}) bool {
	_, ok := keywords[strings.ToLower(name)]
	return ok
}
