// Package apply implements the edit applier: loading file content through
// the injected filesystem, splicing each file's edits in descending
// offset order, and optionally writing the result back.
package apply

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/refactor"
	"github.com/mamaar/gmlrename/pkg/types"
)

// Applier applies a validated WorkspaceEdit file by file.
type Applier struct {
	Queries *analysis.Queries
	Logger  *slog.Logger
}

// NewApplier wraps queries, used only to run the analyzer's own
// validateEdits hook as part of the pre-apply structural check.
func NewApplier(queries *analysis.Queries, logger *slog.Logger) *Applier {
	return &Applier{Queries: queries, Logger: logger}
}

// Apply validates ws structurally, then applies its edits file by file in
// descending-start order, returning a map of path to the resulting
// content. Files are read through fs.ReadFile and processed sequentially
// to avoid I/O races; no cross-file atomicity is required. When dryRun is
// true, writeFile is never called but the returned content map is still
// populated so callers can inspect the intended result.
func (a *Applier) Apply(fs analysis.Filesystem, ws types.WorkspaceEdit, dryRun bool) (map[string]string, error) {
	errs, _ := refactor.ValidateWorkspaceEdit(a.Queries, ws, a.Logger)
	if len(errs) > 0 {
		return nil, &types.RefactorError{
			Type:    types.Overlap,
			Message: fmt.Sprintf("workspace edit failed structural validation: %v", errs),
		}
	}

	byFile := ws.GroupByFile()
	result := make(map[string]string, len(byFile))

	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		edits := byFile[path]
		content, err := fs.ReadFile(path)
		if err != nil {
			return nil, &types.RefactorError{
				Type:    types.AnalysisError,
				Message: fmt.Sprintf("failed to read %s", path),
				File:    path,
				Cause:   err,
			}
		}

		for _, edit := range edits {
			if edit.Start < 0 || edit.End > len(content) || edit.Start > edit.End {
				return nil, &types.RefactorError{
					Type:    types.InvalidArgument,
					Message: fmt.Sprintf("edit range [%d,%d) out of bounds for %s (len %d)", edit.Start, edit.End, path, len(content)),
					File:    path,
				}
			}
			content = content[:edit.Start] + edit.NewText + content[edit.End:]
		}

		result[path] = content

		if !dryRun {
			if err := fs.WriteFile(path, content); err != nil {
				return nil, &types.RefactorError{
					Type:    types.AnalysisError,
					Message: fmt.Sprintf("failed to write %s", path),
					File:    path,
					Cause:   err,
				}
			}
		}
	}

	a.Logger.Info("workspace edit applied", "files", len(result), "dry_run", dryRun)

	return result, nil
}
