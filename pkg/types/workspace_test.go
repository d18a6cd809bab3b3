package types

import "testing"

func TestWorkspaceEditGroupByFile(t *testing.T) {
	edit := WorkspaceEdit{
		Edits: []TextEdit{
			{Path: "a.gml", Start: 10, End: 15, NewText: "health"},
			{Path: "a.gml", Start: 30, End: 33, NewText: "hp"},
			{Path: "b.gml", Start: 5, End: 7, NewText: "hp"},
		},
	}

	byFile := edit.GroupByFile()

	if len(byFile) != 2 {
		t.Fatalf("expected 2 files, got %d", len(byFile))
	}

	aEdits := byFile["a.gml"]
	if len(aEdits) != 2 {
		t.Fatalf("expected 2 edits for a.gml, got %d", len(aEdits))
	}
	if aEdits[0].Start != 30 || aEdits[1].Start != 10 {
		t.Errorf("expected a.gml edits sorted descending by Start, got %v", aEdits)
	}
}

func TestOverlapsDetectsOverlap(t *testing.T) {
	sorted := []TextEdit{
		{Path: "a.gml", Start: 20, End: 25},
		{Path: "a.gml", Start: 10, End: 22},
	}
	if !Overlaps(sorted) {
		t.Error("expected overlap to be detected")
	}
}

func TestOverlapsNoOverlap(t *testing.T) {
	sorted := []TextEdit{
		{Path: "a.gml", Start: 20, End: 25},
		{Path: "a.gml", Start: 10, End: 15},
	}
	if Overlaps(sorted) {
		t.Error("expected no overlap")
	}
}

func TestOverlapsAdjacentNotOverlapping(t *testing.T) {
	sorted := []TextEdit{
		{Path: "a.gml", Start: 15, End: 20},
		{Path: "a.gml", Start: 10, End: 15},
	}
	if Overlaps(sorted) {
		t.Error("adjacent, non-overlapping edits should not count as overlap")
	}
}
