package hotreload

import (
	"log/slog"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/types"
)

// TranspilerPatch is the result of running one recompile update through
// the transpiler bridge: an opaque payload plus the symbol and file it
// came from. The core never inspects Payload's shape.
type TranspilerPatch struct {
	Symbol   string
	FilePath string
	Payload  any
}

// fallbackPatch is the shape emitted when no TranspilerBridge is
// injected: a minimal script patch the caller can still apply verbatim.
type fallbackPatch struct {
	Kind       string `json:"kind"`
	ID         string `json:"id"`
	SourceText string `json:"sourceText"`
	Version    int64  `json:"version"`
}

// GeneratePatches runs every recompile update in updates through the
// transpiler bridge (or a fallback patch shape when none is injected),
// reading each file via the injected filesystem. Notify updates produce
// no patches. A failure on one update is logged via logger and skipped;
// processing continues for the rest.
func GeneratePatches(fs analysis.Filesystem, transpiler analysis.TranspilerBridge, logger *slog.Logger, updates []types.HotReloadUpdate, now int64) []TranspilerPatch {
	var patches []TranspilerPatch

	for _, update := range updates {
		if update.Action != types.Recompile {
			continue
		}

		sourceText, err := fs.ReadFile(update.FilePath)
		if err != nil {
			logger.Warn("hot reload patch generation: failed to read file",
				"symbol", update.Symbol, "path", update.FilePath, "error", err)
			continue
		}

		if transpiler != nil {
			payload, err := transpiler.TranspileScript(analysis.TranspileRequest{
				SourceText: sourceText,
				SymbolID:   update.Symbol,
			})
			if err != nil {
				logger.Warn("hot reload patch generation: transpile failed",
					"symbol", update.Symbol, "path", update.FilePath, "error", err)
				continue
			}
			patches = append(patches, TranspilerPatch{Symbol: update.Symbol, FilePath: update.FilePath, Payload: payload})
			continue
		}

		patches = append(patches, TranspilerPatch{
			Symbol:   update.Symbol,
			FilePath: update.FilePath,
			Payload: fallbackPatch{
				Kind:       "script",
				ID:         update.Symbol,
				SourceText: sourceText,
				Version:    now,
			},
		})
	}

	return patches
}
