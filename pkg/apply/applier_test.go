package apply

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memFS struct {
	files map[string]string
}

func (m *memFS) ReadFile(path string) (string, error) {
	return m.files[path], nil
}

func (m *memFS) WriteFile(path, text string) error {
	m.files[path] = text
	return nil
}

func TestApplySimpleRename(t *testing.T) {
	// S1 -- simple rename applied to source text.
	fs := &memFS{files: map[string]string{"a.gml": "set hp=0;\nreturn hp;"}}
	q := analysis.NewQueries(analysis.Collaborators{})
	applier := NewApplier(q, discardLogger())

	ws := types.WorkspaceEdit{
		Edits: []types.TextEdit{
			{Path: "a.gml", Start: 4, End: 6, NewText: "health"},
			{Path: "a.gml", Start: 17, End: 19, NewText: "health"},
		},
	}

	result, err := applier.Apply(fs, ws, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "set health=0;\nreturn health;"
	if result["a.gml"] != want {
		t.Errorf("got %q, want %q", result["a.gml"], want)
	}
	if fs.files["a.gml"] != want {
		t.Errorf("expected file to be written, got %q", fs.files["a.gml"])
	}
}

func TestApplyOverlapRejection(t *testing.T) {
	// S2 -- overlap rejection; no file is written.
	fs := &memFS{files: map[string]string{"a.gml": "0123456789012"}}
	q := analysis.NewQueries(analysis.Collaborators{})
	applier := NewApplier(q, discardLogger())

	ws := types.WorkspaceEdit{
		Edits: []types.TextEdit{
			{Path: "a.gml", Start: 5, End: 10, NewText: "x"},
			{Path: "a.gml", Start: 8, End: 12, NewText: "y"},
		},
	}

	_, err := applier.Apply(fs, ws, false)
	if err == nil {
		t.Fatal("expected overlap rejection error")
	}
	if fs.files["a.gml"] != "0123456789012" {
		t.Error("expected original file content to be untouched")
	}
}

func TestApplyDryRunDoesNotWrite(t *testing.T) {
	fs := &memFS{files: map[string]string{"a.gml": "hp"}}
	q := analysis.NewQueries(analysis.Collaborators{})
	applier := NewApplier(q, discardLogger())

	ws := types.WorkspaceEdit{
		Edits: []types.TextEdit{{Path: "a.gml", Start: 0, End: 2, NewText: "health"}},
	}

	result, err := applier.Apply(fs, ws, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["a.gml"] != "health" {
		t.Errorf("expected dry-run content to reflect intended edit, got %q", result["a.gml"])
	}
	if fs.files["a.gml"] != "hp" {
		t.Error("expected dry-run to not write to the filesystem")
	}
}

func TestApplyMultiFileDeterministicOrder(t *testing.T) {
	fs := &memFS{files: map[string]string{
		"b.gml": "bb",
		"a.gml": "aa",
	}}
	q := analysis.NewQueries(analysis.Collaborators{})
	applier := NewApplier(q, discardLogger())

	ws := types.WorkspaceEdit{
		Edits: []types.TextEdit{
			{Path: "b.gml", Start: 0, End: 2, NewText: "BB"},
			{Path: "a.gml", Start: 0, End: 2, NewText: "AA"},
		},
	}

	result, err := applier.Apply(fs, ws, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["a.gml"] != "AA" || result["b.gml"] != "BB" {
		t.Errorf("unexpected result: %v", result)
	}
}
