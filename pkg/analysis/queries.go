package analysis

import "github.com/mamaar/gmlrename/pkg/types"

// Queries is the thin adapter the rest of the core talks to instead of a
// Collaborators struct directly: existence checks, occurrence and
// file-symbol lookups, dependents, and position lookup with parser
// fallback. Every method degrades gracefully when the backing
// capability is absent.
type Queries struct {
	Collab Collaborators
}

// NewQueries wraps a Collaborators set.
func NewQueries(collab Collaborators) *Queries {
	return &Queries{Collab: collab}
}

// HasSymbol reports whether id exists, per the injected SymbolResolver.
// Absent a resolver, it conservatively reports true so planning proceeds
// and lets downstream occurrence lookups be the source of truth.
func (q *Queries) HasSymbol(id string) bool {
	if q.Collab.Resolver == nil {
		return true
	}
	return q.Collab.Resolver.HasSymbol(id)
}

// Lookup resolves name in scopeID via the SymbolResolver, if present.
func (q *Queries) Lookup(name, scopeID string) (Binding, bool) {
	if q.Collab.Resolver == nil {
		return Binding{}, false
	}
	return q.Collab.Resolver.Lookup(name, scopeID)
}

// Occurrences returns every occurrence of name, or an empty slice when no
// OccurrenceTracker is injected.
func (q *Queries) Occurrences(name string) ([]types.Occurrence, error) {
	if q.Collab.Occurrences == nil {
		return nil, nil
	}
	return q.Collab.Occurrences.GetSymbolOccurrences(name)
}

// FileSymbols returns the symbols defined in path, or an empty slice when
// no FileSymbolProvider is injected.
func (q *Queries) FileSymbols(path string) ([]FileSymbol, error) {
	if q.Collab.FileSymbols == nil {
		return nil, nil
	}
	return q.Collab.FileSymbols.GetFileSymbols(path)
}

// Dependents returns the dependents of ids, or an empty slice when no
// DependencyAnalyzer is injected.
func (q *Queries) Dependents(ids []string) ([]Dependent, error) {
	if q.Collab.Dependencies == nil {
		return nil, nil
	}
	return q.Collab.Dependencies.GetDependents(ids)
}

// ReservedKeywords returns the project-supplied reserved keywords on top
// of the default set, or nil when no KeywordProvider is injected.
func (q *Queries) ReservedKeywords() []string {
	if q.Collab.Keywords == nil {
		return nil
	}
	return q.Collab.Keywords.GetReservedKeywords()
}

// SymbolAtPosition resolves the symbol at path:offset, preferring the
// SymbolResolver's direct lookup and falling back to a walk of the
// parser's AST when the resolver is absent or finds no match and a
// ParserBridge is available.
func (q *Queries) SymbolAtPosition(path string, offset int) (PositionMatch, bool) {
	if q.Collab.Resolver != nil {
		if m, ok := q.Collab.Resolver.GetSymbolAtPosition(path, offset); ok {
			return m, true
		}
	}
	if q.Collab.Parser == nil {
		return PositionMatch{}, false
	}
	root, err := q.Collab.Parser.Parse(path)
	if err != nil {
		return PositionMatch{}, false
	}
	return findNodeAtOffset(root, offset)
}

func findNodeAtOffset(node AstNode, offset int) (PositionMatch, bool) {
	if offset < node.Start || offset >= node.End {
		return PositionMatch{}, false
	}
	for _, child := range node.Children {
		if match, ok := findNodeAtOffset(child, offset); ok {
			return match, true
		}
	}
	if node.Name == "" {
		return PositionMatch{}, false
	}
	return PositionMatch{Name: node.Name, Start: node.Start, End: node.End}, true
}

// ValidateEdits runs the analyzer's own validation pass over ws, if one
// is injected.
func (q *Queries) ValidateEdits(ws types.WorkspaceEdit) (EditValidationResult, bool, error) {
	if q.Collab.EditCheck == nil {
		return EditValidationResult{}, false, nil
	}
	result, err := q.Collab.EditCheck.ValidateEdits(ws)
	return result, true, err
}
