package hotreload

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/graph"
	"github.com/mamaar/gmlrename/pkg/types"
)

// BuildFileLevelUpdates expands an applied workspace edit into the
// symbol-level hot-reload updates described in §4.10: one recompile
// update per symbol defined in each touched file (or a synthetic
// file-level one when the file defines no known symbols), followed by a
// notify update for every cascade entry the recompiled symbols reach that
// isn't already covered.
func BuildFileLevelUpdates(queries *analysis.Queries, ws types.WorkspaceEdit, logger *slog.Logger) ([]types.HotReloadUpdate, error) {
	byFile := ws.GroupByFile()

	var updates []types.HotReloadUpdate
	covered := make(map[string]bool)
	var recompiledSymbols []string

	paths := sortedKeysOfEdit(ws)
	for _, path := range paths {
		edits := byFile[path]
		ranges := affectedRanges(edits)

		symbols, err := queries.FileSymbols(path)
		if err != nil {
			return nil, &types.RefactorError{Type: types.AnalysisError, Message: "file symbol lookup failed", File: path, Cause: err}
		}

		if len(symbols) == 0 {
			syntheticID := fmt.Sprintf("file://%s", path)
			updates = append(updates, types.HotReloadUpdate{
				Symbol:         syntheticID,
				Action:         types.Recompile,
				FilePath:       path,
				AffectedRanges: ranges,
			})
			covered[syntheticID] = true
			recompiledSymbols = append(recompiledSymbols, syntheticID)
			continue
		}

		for _, sym := range symbols {
			updates = append(updates, types.HotReloadUpdate{
				Symbol:         sym.ID,
				Action:         types.Recompile,
				FilePath:       path,
				AffectedRanges: ranges,
			})
			covered[sym.ID] = true
			recompiledSymbols = append(recompiledSymbols, sym.ID)
		}
	}

	if len(recompiledSymbols) == 0 {
		return updates, nil
	}

	cascade, err := graph.BuildCascade(queries, recompiledSymbols, logger)
	if err != nil {
		return nil, err
	}

	notifyPaths := make([]string, 0, len(cascade.Entries))
	for symbol := range cascade.Entries {
		notifyPaths = append(notifyPaths, symbol)
	}
	sort.Strings(notifyPaths)

	for _, symbol := range notifyPaths {
		if covered[symbol] {
			continue
		}
		entry := cascade.Entries[symbol]
		if entry.FilePath == "" {
			continue
		}
		updates = append(updates, types.HotReloadUpdate{
			Symbol:   symbol,
			Action:   types.Notify,
			FilePath: entry.FilePath,
		})
	}

	return updates, nil
}

func affectedRanges(edits []types.TextEdit) []types.AffectedRange {
	ranges := make([]types.AffectedRange, len(edits))
	for i, e := range edits {
		ranges[i] = types.AffectedRange{Start: e.Start, End: e.End}
	}
	return ranges
}

func sortedKeysOfEdit(ws types.WorkspaceEdit) []string {
	byFile := ws.GroupByFile()
	keys := make([]string, 0, len(byFile))
	for k := range byFile {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
