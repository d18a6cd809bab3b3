package refactor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/types"
	"github.com/mamaar/gmlrename/pkg/validate"
)

// BatchPlanner plans a batch of renames atomically: duplicate and cycle
// rejection up front, independent per-rename planning, then a merged
// overlap revalidation across the whole batch.
type BatchPlanner struct {
	Planner *Planner
	Logger  *slog.Logger
}

// NewBatchPlanner wraps a Planner, logging through logger.
func NewBatchPlanner(planner *Planner, logger *slog.Logger) *BatchPlanner {
	return &BatchPlanner{Planner: planner, Logger: logger}
}

// PlanBatchRename plans every request in reqs and merges the results into
// a single RefactoringPlan. It throws on an empty batch, a duplicate
// source symbol, a duplicate normalized target name, a circular rename
// chain, any individual rename's failure, or an overlap across the
// merged edit set.
func (bp *BatchPlanner) PlanBatchRename(reqs []types.RenameRequest) (*types.RefactoringPlan, error) {
	if len(reqs) == 0 {
		return nil, &types.RefactorError{
			Type:    types.InvalidArgument,
			Message: "batch rename requires at least one request",
		}
	}

	if err := rejectDuplicateSymbols(reqs); err != nil {
		return nil, err
	}
	if err := rejectDuplicateTargets(reqs); err != nil {
		return nil, err
	}
	if cycle := DetectCircularRenames(reqs, bp.Logger); cycle != nil {
		return nil, &types.RefactorError{
			Type:    types.CycleInBatch,
			Message: fmt.Sprintf("circular rename chain detected: %s", strings.Join(cycle, " -> ")),
		}
	}

	merged := types.WorkspaceEdit{}
	for _, req := range reqs {
		plan, err := bp.Planner.PlanRename(req)
		if err != nil {
			return nil, err
		}
		merged.Edits = append(merged.Edits, plan.Edit.Edits...)
		merged.Renames = append(merged.Renames, plan.Edit.Renames...)
	}

	byFile := merged.GroupByFile()
	for path, edits := range byFile {
		if types.Overlaps(edits) {
			return nil, &types.RefactorError{
				Type:    types.Overlap,
				Message: fmt.Sprintf("overlapping edits across batch members in %s", path),
			}
		}
	}

	bp.Logger.Info("batch rename planned", "requests", len(reqs), "edits", len(merged.Edits))

	return &types.RefactoringPlan{
		ID:       uuid.New(),
		Requests: reqs,
		Edit:     merged,
	}, nil
}

func rejectDuplicateSymbols(reqs []types.RenameRequest) error {
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if seen[req.Symbol] {
			return &types.RefactorError{
				Type:    types.DuplicateSymbol,
				Message: fmt.Sprintf("symbol %q appears more than once in the batch", req.Symbol),
			}
		}
		seen[req.Symbol] = true
	}
	return nil
}

func rejectDuplicateTargets(reqs []types.RenameRequest) error {
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		normalized, err := validate.NormalizeIdentifier(req.NewName)
		if err != nil {
			return err
		}
		if seen[normalized] {
			return &types.RefactorError{
				Type:    types.DuplicateTarget,
				Message: fmt.Sprintf("target name %q is used by more than one rename in the batch", normalized),
			}
		}
		seen[normalized] = true
	}
	return nil
}

// AnalyzeRenameImpact produces the occurrence/dependent breakdown for a
// single rename request, per §4.8: affected files, definition vs
// reference counts, and warnings for large renames or wide dependent
// fan-out.
func AnalyzeRenameImpact(queries *analysis.Queries, req types.RenameRequest, logger *slog.Logger) (types.RenameImpact, error) {
	sym, err := validate.ParseSymbolID(req.Symbol)
	if err != nil {
		return types.RenameImpact{}, err
	}

	occurrences, err := queries.Occurrences(sym.BareName())
	if err != nil {
		return types.RenameImpact{}, &types.RefactorError{Type: types.AnalysisError, Message: "occurrence lookup failed", Cause: err}
	}

	filesSeen := make(map[string]bool)
	var impact types.RenameImpact
	for _, occ := range occurrences {
		if !filesSeen[occ.Path] {
			filesSeen[occ.Path] = true
			impact.AffectedFiles = append(impact.AffectedFiles, occ.Path)
		}
		switch occ.Kind {
		case types.Definition:
			impact.DefinitionCount++
		case types.Reference:
			impact.ReferenceCount++
		}
	}
	impact.TotalOccurrences = len(occurrences)
	impact.HotReloadRequired = impact.TotalOccurrences > 0

	dependents, err := queries.Dependents([]string{req.Symbol})
	if err != nil {
		return types.RenameImpact{}, &types.RefactorError{Type: types.AnalysisError, Message: "dependents lookup failed", Cause: err}
	}
	for _, dep := range dependents {
		impact.DependentSymbols = append(impact.DependentSymbols, dep.SymbolID)
	}

	if impact.TotalOccurrences > 50 {
		impact.Warnings = append(impact.Warnings, types.Conflict{
			Type:     types.LargeRename,
			Message:  fmt.Sprintf("rename touches %d occurrences", impact.TotalOccurrences),
			Severity: types.SeverityWarning,
		})
		logger.Warn("large rename", "symbol", req.Symbol, "occurrences", impact.TotalOccurrences)
	}
	if len(impact.DependentSymbols) > 10 {
		impact.Warnings = append(impact.Warnings, types.Conflict{
			Type:     types.ManyDependents,
			Message:  fmt.Sprintf("rename affects %d dependent symbols", len(impact.DependentSymbols)),
			Severity: types.SeverityWarning,
		})
		logger.Warn("rename affects many dependents", "symbol", req.Symbol, "dependents", len(impact.DependentSymbols))
	}

	return impact, nil
}
