package types

import "github.com/google/uuid"

// IssueSeverity classifies how serious a validation Conflict is. A Fatal
// conflict makes a RefactoringPlan non-Applyable; Warning conflicts are
// surfaced but do not by themselves.
type IssueSeverity int

const (
	SeverityWarning IssueSeverity = iota
	SeverityFatal
)

func (s IssueSeverity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}
	return "warning"
}

// ConflictType enumerates the kinds of semantic conflicts the planner and
// validator can surface as Conflict entries. Problems the planner rejects
// outright instead of listing -- cycles, overlaps, duplicate targets --
// are reported as RefactorErrors (see ErrorType), not as Conflicts.
type ConflictType int

const (
	UnknownConflict ConflictType = iota
	InvalidIdentifierConflict
	Shadow
	Reserved
	MissingSymbolConflict
	LargeRename
	ManyDependents
	AnalysisFailure
)

func (c ConflictType) String() string {
	switch c {
	case InvalidIdentifierConflict:
		return "invalid_identifier"
	case Shadow:
		return "shadow"
	case Reserved:
		return "reserved"
	case MissingSymbolConflict:
		return "missing_symbol"
	case LargeRename:
		return "large_rename"
	case ManyDependents:
		return "many_dependents"
	case AnalysisFailure:
		return "analysis_error"
	default:
		return "unknown"
	}
}

// Conflict is a single detected semantic issue found while planning a
// rename.
type Conflict struct {
	Type     ConflictType
	Message  string
	Severity IssueSeverity
	Path     string
}

// RenameRequest is the input to PlanRename: rename Symbol to NewName.
type RenameRequest struct {
	Symbol  string
	NewName string
}

// RefactoringPlan is the output of PlanRename/PlanBatchRename: the
// requests and the resulting workspace edit. Those planners return an
// error instead of a plan when any conflict is found, so the plans they
// build carry no Conflicts. A plan with only Warning-severity conflicts is
// still Applyable; one with any Fatal conflict is not.
type RefactoringPlan struct {
	ID        uuid.UUID
	Requests  []RenameRequest
	Edit      WorkspaceEdit
	Conflicts []Conflict
}

// Applyable reports whether the plan has no fatal conflicts.
func (p RefactoringPlan) Applyable() bool {
	for _, c := range p.Conflicts {
		if c.Severity == SeverityFatal {
			return false
		}
	}
	return true
}

// CascadeEntry is one symbol's position in a hot-reload cascade. Distance
// 0 marks a directly-changed symbol; each BFS hop increments it.
type CascadeEntry struct {
	Symbol   string
	Distance int
	Reason   string
	FilePath string
}

// HotReloadAction classifies what a HotReloadUpdate represents.
type HotReloadAction int

const (
	ActionUnknown HotReloadAction = iota
	Recompile
	Notify
)

func (a HotReloadAction) String() string {
	switch a {
	case Recompile:
		return "recompile"
	case Notify:
		return "notify"
	default:
		return "unknown"
	}
}

// AffectedRange is a byte range within FilePath touched by a rename, used
// to annotate HotReloadUpdate entries for partial-file recompilation.
type AffectedRange struct {
	Start int
	End   int
}

// HotReloadUpdate describes one symbol-level unit of work produced by the
// cascade engine's file-level expansion. Recompile means the symbol's own
// source changed; Notify means a transitive dependent needs informing but
// has no direct edits.
type HotReloadUpdate struct {
	Symbol         string
	Action         HotReloadAction
	FilePath       string
	AffectedRanges []AffectedRange
}

// ImpactGraphNode is one symbol's node in the impact graph produced by
// graph.BuildImpactGraph.
type ImpactGraphNode struct {
	Symbol              string
	SymbolName          string
	Distance            int
	IsDirectlyAffected  bool
	Dependents          []string
	DependsOn           []string
	FilePath            string
	EstimatedReloadTime int
}

// ImpactAnalysis is the full result of graph.BuildImpactGraph: the impact
// graph, any cycles found in the dependents graph, and the length of the
// longest simple dependency chain in the cascade.
type ImpactAnalysis struct {
	Nodes           map[string]ImpactGraphNode
	Cycles          [][]string
	CriticalPathLen int
}

// RenameImpact is the result of single-rename impact analysis (§4.8):
// the occurrence breakdown for one rename request plus the warnings it
// triggers.
type RenameImpact struct {
	AffectedFiles     []string
	DefinitionCount   int
	ReferenceCount    int
	TotalOccurrences  int
	DependentSymbols  []string
	HotReloadRequired bool
	Warnings          []Conflict
}
