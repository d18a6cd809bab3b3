// Package validate holds the structural assertion helpers shared by the
// planner, batch planner, and validator: identifier normalization, symbol
// id parsing, and the default reserved-keyword set.
package validate

import (
	"regexp"
	"strings"

	"github.com/mamaar/gmlrename/pkg/types"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NormalizeIdentifier asserts name is a valid GML identifier and returns
// it unchanged; a name with leading or trailing whitespace is rejected,
// not trimmed. It does not lowercase -- identifier casing is
// significant; callers that need a reserved-keyword comparison lowercase
// separately.
func NormalizeIdentifier(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &types.RefactorError{
			Type:    types.InvalidIdentifier,
			Message: "identifier is empty",
		}
	}
	if trimmed != name {
		return "", &types.RefactorError{
			Type:    types.InvalidIdentifier,
			Message: "identifier has leading or trailing whitespace: " + name,
		}
	}
	if !identifierPattern.MatchString(trimmed) {
		return "", &types.RefactorError{
			Type:    types.InvalidIdentifier,
			Message: "identifier does not match [A-Za-z_][A-Za-z0-9_]*: " + name,
		}
	}
	return trimmed, nil
}

// IsValidIdentifier reports whether name passes NormalizeIdentifier without
// allocating an error for call sites that only need a boolean.
func IsValidIdentifier(name string) bool {
	_, err := NormalizeIdentifier(name)
	return err == nil
}

// ParseSymbolID parses a canonical symbol id by delegating to
// types.ParseSymbolID, which reports too few segments as a
// MalformedSymbolID error and does not reject an unknown kind -- kind
// validity is the caller's concern.
func ParseSymbolID(id string) (types.SymbolID, error) {
	return types.ParseSymbolID(id)
}
