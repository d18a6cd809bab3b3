package analysis

import (
	"testing"

	"github.com/mamaar/gmlrename/pkg/types"
)

type fakeResolver struct {
	exists   map[string]bool
	bindings map[string]Binding
}

func (f *fakeResolver) HasSymbol(id string) bool { return f.exists[id] }

func (f *fakeResolver) Lookup(name, scopeID string) (Binding, bool) {
	b, ok := f.bindings[name+"@"+scopeID]
	return b, ok
}

func (f *fakeResolver) GetSymbolAtPosition(path string, offset int) (PositionMatch, bool) {
	return PositionMatch{}, false
}

type fakeOccurrences struct {
	byName map[string][]types.Occurrence
}

func (f *fakeOccurrences) GetSymbolOccurrences(name string) ([]types.Occurrence, error) {
	return f.byName[name], nil
}

type fakeParser struct {
	trees map[string]AstNode
}

func (f *fakeParser) Parse(path string) (AstNode, error) {
	return f.trees[path], nil
}

func TestQueriesHasSymbolWithoutResolverDefaultsTrue(t *testing.T) {
	q := NewQueries(Collaborators{})
	if !q.HasSymbol("gml/script/scr_move") {
		t.Error("expected HasSymbol to default true without a resolver")
	}
}

func TestQueriesHasSymbolWithResolver(t *testing.T) {
	q := NewQueries(Collaborators{
		Resolver: &fakeResolver{exists: map[string]bool{"gml/script/scr_move": true}},
	})
	if !q.HasSymbol("gml/script/scr_move") {
		t.Error("expected true for known symbol")
	}
	if q.HasSymbol("gml/script/scr_missing") {
		t.Error("expected false for unknown symbol")
	}
}

func TestQueriesOccurrencesWithoutTrackerReturnsEmpty(t *testing.T) {
	q := NewQueries(Collaborators{})
	occs, err := q.Occurrences("hp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("expected no occurrences, got %v", occs)
	}
}

func TestQueriesSymbolAtPositionFallsBackToParser(t *testing.T) {
	tree := AstNode{
		Type:  "script",
		Start: 0,
		End:   100,
		Children: []AstNode{
			{Type: "identifier", Name: "hp", Start: 10, End: 12},
		},
	}
	q := NewQueries(Collaborators{
		Parser: &fakeParser{trees: map[string]AstNode{"a.gml": tree}},
	})

	match, ok := q.SymbolAtPosition("a.gml", 11)
	if !ok {
		t.Fatal("expected a match from parser fallback")
	}
	if match.Name != "hp" {
		t.Errorf("Name = %q, want %q", match.Name, "hp")
	}
}

func TestQueriesSymbolAtPositionNoMatch(t *testing.T) {
	q := NewQueries(Collaborators{})
	_, ok := q.SymbolAtPosition("a.gml", 5)
	if ok {
		t.Error("expected no match without resolver or parser")
	}
}
