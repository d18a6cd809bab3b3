package types

import "strings"

// SymbolKind enumerates the kinds of GML symbols the rename engine knows
// how to reason about. The kind is always the second path segment of a
// symbol id (gml/{kind}/{name}).
type SymbolKind int

const (
	UnknownSymbol SymbolKind = iota
	ScriptSymbol
	VarSymbol
	EventSymbol
	MacroSymbol
	EnumSymbol
)

// String returns the kind's canonical path-segment spelling.
func (k SymbolKind) String() string {
	switch k {
	case ScriptSymbol:
		return "script"
	case VarSymbol:
		return "var"
	case EventSymbol:
		return "event"
	case MacroSymbol:
		return "macro"
	case EnumSymbol:
		return "enum"
	default:
		return "unknown"
	}
}

func parseSymbolKind(s string) SymbolKind {
	switch s {
	case "script":
		return ScriptSymbol
	case "var":
		return VarSymbol
	case "event":
		return EventSymbol
	case "macro":
		return MacroSymbol
	case "enum":
		return EnumSymbol
	default:
		return UnknownSymbol
	}
}

// SymbolID is the parsed form of a canonical "gml/{kind}/{name}" identifier.
// Instance variables qualify the bare name with "{object}::{field}"; for
// those, Qualifier holds the object name and Name holds the field.
type SymbolID struct {
	Raw       string
	Kind      SymbolKind
	KindRaw   string // the raw second segment, even when it isn't a known kind
	Name      string // bare name (last path segment, qualifier stripped)
	Qualifier string // object name before "::" for instance vars, else ""
}

// ParseSymbolID parses a canonical symbol id of the form "gml/{kind}/{name}".
// It requires at least three "/"-separated segments; the kind is segment 1
// and the name is the last segment. It never rejects an unrecognized kind
// by itself -- callers that care use Kind == UnknownSymbol.
func ParseSymbolID(id string) (SymbolID, error) {
	segments := strings.Split(id, "/")
	if len(segments) < 3 {
		return SymbolID{}, &RefactorError{
			Type:    MalformedSymbolID,
			Message: "symbol id must have at least 3 '/'-separated segments: " + id,
		}
	}

	kindRaw := segments[1]
	bare := segments[len(segments)-1]

	sym := SymbolID{
		Raw:     id,
		Kind:    parseSymbolKind(kindRaw),
		KindRaw: kindRaw,
		Name:    bare,
	}

	if idx := strings.Index(bare, "::"); idx >= 0 {
		sym.Qualifier = bare[:idx]
		sym.Name = bare[idx+2:]
	}

	return sym, nil
}

// String reconstructs the canonical symbol id.
func (s SymbolID) String() string {
	return s.Raw
}

// BareName returns the unqualified symbol name as used for keyword/reserved
// and occurrence lookups: the field name for instance vars, the plain name
// otherwise.
func (s SymbolID) BareName() string {
	return s.Name
}

// WithNewName synthesizes the symbol id that `s` would have if its bare
// name were replaced with newName, preserving kind and qualifier. Used to
// build the rename-forwarding graph for circular-rename detection.
func (s SymbolID) WithNewName(newName string) string {
	segments := strings.Split(s.Raw, "/")
	last := newName
	if s.Qualifier != "" {
		last = s.Qualifier + "::" + newName
	}
	segments[len(segments)-1] = last
	return strings.Join(segments, "/")
}

// OccurrenceKind classifies a symbol occurrence as reported by the semantic
// analyzer.
type OccurrenceKind int

const (
	UnknownOccurrence OccurrenceKind = iota
	Definition
	Reference
)

// Occurrence is a single source location where a symbol is defined or
// referenced, as reported by the semantic analyzer's OccurrenceTracker.
type Occurrence struct {
	Path    string
	Start   int
	End     int
	ScopeID string
	Kind    OccurrenceKind
}
