package graph

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mamaar/gmlrename/pkg/analysis"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticDependents map[string][]analysis.Dependent

func (s staticDependents) GetDependents(ids []string) ([]analysis.Dependent, error) {
	var out []analysis.Dependent
	for _, id := range ids {
		out = append(out, s[id]...)
	}
	return out, nil
}

func TestBuildCascadeDiamondWithCycle(t *testing.T) {
	// S5 -- cascade with diamond + cycle.
	deps := staticDependents{
		"A": {{SymbolID: "B"}, {SymbolID: "C"}},
		"B": {{SymbolID: "D"}},
		"C": {{SymbolID: "D"}},
		"D": {{SymbolID: "A"}},
	}
	q := analysis.NewQueries(analysis.Collaborators{Dependencies: deps})

	cascade, err := BuildCascade(q, []string{"A"}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cascade.Entries["A"].Distance != 0 {
		t.Errorf("A distance = %d, want 0", cascade.Entries["A"].Distance)
	}
	if cascade.Entries["B"].Distance != 1 {
		t.Errorf("B distance = %d, want 1", cascade.Entries["B"].Distance)
	}
	if cascade.Entries["C"].Distance != 1 {
		t.Errorf("C distance = %d, want 1", cascade.Entries["C"].Distance)
	}
	if cascade.Entries["D"].Distance != 2 {
		t.Errorf("D distance = %d, want 2", cascade.Entries["D"].Distance)
	}

	if len(cascade.Circular) != 1 {
		t.Fatalf("expected exactly 1 cycle reported, got %d: %v", len(cascade.Circular), cascade.Circular)
	}
	if !cascade.HasCircular {
		t.Error("expected HasCircular to be true")
	}
}

func TestBuildCascadeAcyclicTopologicalOrder(t *testing.T) {
	deps := staticDependents{
		"A": {{SymbolID: "B"}},
		"B": {{SymbolID: "C"}},
	}
	q := analysis.NewQueries(analysis.Collaborators{Dependencies: deps})

	cascade, err := BuildCascade(q, []string{"A"}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cascade.HasCircular {
		t.Error("expected no cycle in a linear chain")
	}

	pos := make(map[string]int, len(cascade.Order))
	for i, s := range cascade.Order {
		pos[s] = i
	}
	if pos["A"] >= pos["B"] || pos["B"] >= pos["C"] {
		t.Errorf("expected topological order A, B, C; got %v", cascade.Order)
	}
}

func TestBuildCascadeNoDependents(t *testing.T) {
	q := analysis.NewQueries(analysis.Collaborators{})
	cascade, err := BuildCascade(q, []string{"A"}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cascade.TotalSymbols != 1 {
		t.Errorf("expected 1 symbol, got %d", cascade.TotalSymbols)
	}
	if cascade.HasCircular {
		t.Error("expected no cycle for a single isolated symbol")
	}
}
