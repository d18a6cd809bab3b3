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

// Planner plans and previews single renames against an injected set of
// semantic analyzer capabilities. ValidationCache is optional: a nil
// cache disables memoization and every call recomputes conflicts.
type Planner struct {
	Queries         *analysis.Queries
	Logger          *slog.Logger
	ValidationCache *analysis.RenameValidationCache
}

// NewPlanner wraps queries, logging through logger and memoizing conflict
// lookups in cache. Pass a nil cache to disable memoization.
func NewPlanner(queries *analysis.Queries, logger *slog.Logger, cache *analysis.RenameValidationCache) *Planner {
	return &Planner{Queries: queries, Logger: logger, ValidationCache: cache}
}

// conflictsFor returns the conflicts for renaming symbolID (bare name
// oldName) to newName, serving a cached RenameValidation keyed by
// (symbolID, newName) when one is fresh and memoizing a freshly computed
// one otherwise.
func (p *Planner) conflictsFor(symbolID, oldName, newName string, occurrences []types.Occurrence) []types.Conflict {
	if p.ValidationCache != nil {
		if cached, ok := p.ValidationCache.Get(symbolID, newName); ok {
			p.Logger.Debug("rename validation cache hit", "symbol", symbolID, "new", newName)
			return cached.Conflicts
		}
	}

	conflicts := DetectConflicts(p.Queries, oldName, newName, occurrences, p.Logger)

	if p.ValidationCache != nil {
		p.ValidationCache.Put(symbolID, newName, analysis.RenameValidation{Conflicts: conflicts})
	}

	return conflicts
}

// ValidateRenameRequest previews a rename without throwing for semantic
// issues: it normalizes the request, gathers occurrences, and returns
// whatever conflicts DetectConflicts finds. Structural failures (bad
// syntax, missing symbol, same name) are still returned as errors, since
// there is no meaningful preview to build without a valid request.
func (p *Planner) ValidateRenameRequest(req types.RenameRequest) ([]types.Conflict, error) {
	sym, newName, err := p.normalize(req)
	if err != nil {
		return nil, err
	}

	if !p.Queries.HasSymbol(req.Symbol) {
		return nil, &types.RefactorError{
			Type:    types.MissingSymbol,
			Message: fmt.Sprintf("symbol %q not found", req.Symbol),
		}
	}

	occurrences, err := p.Queries.Occurrences(sym.BareName())
	if err != nil {
		return nil, &types.RefactorError{Type: types.AnalysisError, Message: "occurrence lookup failed", Cause: err}
	}

	return p.conflictsFor(req.Symbol, sym.BareName(), newName, occurrences), nil
}

// PlanRename plans a single rename end to end. It throws (returns a
// non-nil error) on any unrecoverable condition: invalid request shape,
// missing symbol, same-name target, or any detected conflict.
func (p *Planner) PlanRename(req types.RenameRequest) (*types.RefactoringPlan, error) {
	sym, newName, err := p.normalize(req)
	if err != nil {
		return nil, err
	}

	if !p.Queries.HasSymbol(req.Symbol) {
		return nil, &types.RefactorError{
			Type:    types.MissingSymbol,
			Message: fmt.Sprintf("symbol %q not found", req.Symbol),
		}
	}

	occurrences, err := p.Queries.Occurrences(sym.BareName())
	if err != nil {
		return nil, &types.RefactorError{Type: types.AnalysisError, Message: "occurrence lookup failed", Cause: err}
	}

	conflicts := p.conflictsFor(req.Symbol, sym.BareName(), newName, occurrences)
	if len(conflicts) > 0 {
		return nil, &types.RefactorError{
			Type:    types.InvalidArgument,
			Message: compositeConflictMessage(conflicts),
		}
	}

	edit := types.WorkspaceEdit{}
	for _, occ := range occurrences {
		edit.Edits = append(edit.Edits, types.TextEdit{
			Path:    occ.Path,
			Start:   occ.Start,
			End:     occ.End,
			NewText: newName,
		})
	}

	p.Logger.Info("rename planned", "symbol", req.Symbol, "new_name", newName, "edits", len(edit.Edits))

	return &types.RefactoringPlan{
		ID:       uuid.New(),
		Requests: []types.RenameRequest{req},
		Edit:     edit,
	}, nil
}

// normalize validates request shape and newName syntax, parses the
// symbol id, and rejects a no-op rename.
func (p *Planner) normalize(req types.RenameRequest) (types.SymbolID, string, error) {
	if req.Symbol == "" || req.NewName == "" {
		return types.SymbolID{}, "", &types.RefactorError{
			Type:    types.InvalidArgument,
			Message: "rename request requires both a symbol id and a new name",
		}
	}

	sym, err := validate.ParseSymbolID(req.Symbol)
	if err != nil {
		return types.SymbolID{}, "", err
	}

	newName, err := validate.NormalizeIdentifier(req.NewName)
	if err != nil {
		return types.SymbolID{}, "", err
	}

	if newName == sym.BareName() {
		return types.SymbolID{}, "", &types.RefactorError{
			Type:    types.SameName,
			Message: fmt.Sprintf("new name %q is the same as the current name", newName),
		}
	}

	return sym, newName, nil
}

func compositeConflictMessage(conflicts []types.Conflict) string {
	messages := make([]string, len(conflicts))
	for i, c := range conflicts {
		messages[i] = fmt.Sprintf("%s: %s", c.Type, c.Message)
	}
	return fmt.Sprintf("%d conflict(s) found: %s", len(conflicts), strings.Join(messages, "; "))
}
