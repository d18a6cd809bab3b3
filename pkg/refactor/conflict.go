// Package refactor implements the rename planner, batch planner, and the
// conflict and circular-rename detection they share.
package refactor

import (
	"fmt"
	"log/slog"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/types"
	"github.com/mamaar/gmlrename/pkg/validate"
)

// DetectConflicts runs the conflict-detection algorithm for a single
// rename: normalize newName, check every scoped occurrence against the
// resolver for shadowing, and check newName against the reserved-keyword
// set. It never fails on semantic issues -- it returns the complete list
// of Conflicts found, which may be empty.
func DetectConflicts(queries *analysis.Queries, oldName, newName string, occurrences []types.Occurrence, logger *slog.Logger) []types.Conflict {
	var conflicts []types.Conflict

	normalized, err := validate.NormalizeIdentifier(newName)
	if err != nil {
		return []types.Conflict{{
			Type:     types.InvalidIdentifierConflict,
			Message:  err.Error(),
			Severity: types.SeverityFatal,
		}}
	}

	for _, occ := range occurrences {
		if occ.ScopeID == "" {
			continue
		}
		binding, ok := queries.Lookup(normalized, occ.ScopeID)
		if !ok || binding.Name == oldName {
			continue
		}
		conflicts = append(conflicts, types.Conflict{
			Type:     types.Shadow,
			Message:  fmt.Sprintf("%q would shadow existing binding %q in scope %q", normalized, binding.Name, occ.ScopeID),
			Severity: types.SeverityWarning,
			Path:     occ.Path,
		})
	}

	keywords := validate.MergeKeywords(queries.ReservedKeywords())
	if validate.IsReserved(normalized, keywords) {
		conflicts = append(conflicts, types.Conflict{
			Type:     types.Reserved,
			Message:  fmt.Sprintf("%q is a reserved keyword and cannot be used as a rename target", normalized),
			Severity: types.SeverityFatal,
		})
	}

	if len(conflicts) > 0 {
		logger.Warn("rename conflicts detected", "old", oldName, "new", normalized, "count", len(conflicts))
	}

	return conflicts
}

// ValidateWorkspaceEdit performs the structural checks §4.3 requires
// before a merged edit is applied: non-empty, no overlaps within any
// file, and a warning for files touched by more than 50 edits. It also
// merges in the semantic analyzer's own validateEdits errors/warnings
// when one is injected.
func ValidateWorkspaceEdit(queries *analysis.Queries, ws types.WorkspaceEdit, logger *slog.Logger) (errs []string, warnings []string) {
	if len(ws.Edits) == 0 && len(ws.Renames) == 0 {
		return []string{"workspace edit is empty"}, nil
	}

	byFile := ws.GroupByFile()
	for path, edits := range byFile {
		if types.Overlaps(edits) {
			errs = append(errs, fmt.Sprintf("%s: overlapping edits detected", path))
			logger.Warn("overlapping edits detected", "file", path)
		}
		if len(edits) > 50 {
			msg := fmt.Sprintf("%s: %d edits in a single file", path, len(edits))
			warnings = append(warnings, msg)
			logger.Warn("large single-file edit", "file", path, "edits", len(edits))
		}
	}

	if result, ok, err := queries.ValidateEdits(ws); ok && err == nil {
		errs = append(errs, result.Errors...)
		warnings = append(warnings, result.Warnings...)
	}

	return errs, warnings
}

// DetectCircularRenames builds the rename-forwarding graph for a batch of
// requests -- an edge from each symbol id to the synthesized id it would
// become -- and runs DFS looking for the first cycle. It returns the
// cycle as a slice of symbol ids closing back on its start (e.g.
// [A, B, A]), or nil if the batch has no cycle.
func DetectCircularRenames(requests []types.RenameRequest, logger *slog.Logger) []string {
	edges := make(map[string]string, len(requests))
	for _, req := range requests {
		sym, err := validate.ParseSymbolID(req.Symbol)
		if err != nil {
			continue
		}
		edges[req.Symbol] = sym.WithNewName(req.NewName)
	}

	visiting := make(map[string]bool)
	fullyExplored := make(map[string]bool)

	var dfs func(node string, path []string) []string
	dfs = func(node string, path []string) []string {
		if visiting[node] {
			for i, n := range path {
				if n == node {
					return append(append([]string{}, path[i:]...), node)
				}
			}
			return append(append([]string{}, path...), node)
		}
		if fullyExplored[node] {
			return nil
		}

		next, hasEdge := edges[node]
		if !hasEdge {
			fullyExplored[node] = true
			return nil
		}

		visiting[node] = true
		path = append(path, node)
		if cycle := dfs(next, path); cycle != nil {
			return cycle
		}
		visiting[node] = false
		fullyExplored[node] = true
		return nil
	}

	for _, req := range requests {
		if fullyExplored[req.Symbol] {
			continue
		}
		if cycle := dfs(req.Symbol, nil); cycle != nil {
			logger.Warn("circular rename chain detected", "cycle", cycle)
			return cycle
		}
	}

	return nil
}
