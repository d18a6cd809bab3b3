// Package hotreload implements the safety classification and file-level
// update expansion that sit between a planned rename and the transpiler:
// deciding whether a rename can apply live, and turning an applied
// workspace edit into the symbol-level updates the cascade engine and
// patch generator consume.
package hotreload

import (
	"github.com/mamaar/gmlrename/pkg/types"
	"github.com/mamaar/gmlrename/pkg/validate"
)

// SafetyResult is the outcome of classifying one rename's live-reload
// safety.
type SafetyResult struct {
	Safe            bool
	RequiresRestart bool
	CanAutoFix      bool
	Suggestions     []string
}

// ClassifySafety classifies whether renaming symbol (of kind sym.Kind)
// from oldName to newName can be applied to a running instance without a
// restart, given the conflicts DetectConflicts already found for it and
// whether a semantic analyzer was available at all. It never fails: an
// unclassifiable or invalid input degrades to a guarded unsafe result
// with actionable suggestions rather than an error.
func ClassifySafety(sym types.SymbolID, oldName, newName string, conflicts []types.Conflict, hasAnalyzer bool) SafetyResult {
	if sym.Raw == "" || newName == "" {
		return unsafeRestart("missing or invalid symbol id or new name")
	}
	if !validate.IsValidIdentifier(newName) {
		return unsafeRestart("invalid identifier syntax")
	}
	if !hasAnalyzer {
		return unsafeRestart("no semantic analyzer injected")
	}
	if sym.Kind == types.UnknownSymbol {
		return unsafeRestart("invalid symbol kind: " + sym.KindRaw)
	}

	if newName == oldName {
		return SafetyResult{Safe: false, RequiresRestart: false, CanAutoFix: false}
	}

	for _, c := range conflicts {
		switch c.Type {
		case types.Reserved:
			return SafetyResult{Safe: false, RequiresRestart: true, CanAutoFix: false, Suggestions: []string{c.Message}}
		case types.Shadow:
			return SafetyResult{Safe: false, RequiresRestart: false, CanAutoFix: true, Suggestions: []string{c.Message}}
		}
	}
	if len(conflicts) > 0 {
		suggestions := make([]string, len(conflicts))
		for i, c := range conflicts {
			suggestions[i] = c.Message
		}
		return SafetyResult{Safe: false, RequiresRestart: false, CanAutoFix: false, Suggestions: suggestions}
	}

	return baseSafetyForKind(sym)
}

func baseSafetyForKind(sym types.SymbolID) SafetyResult {
	switch sym.Kind {
	case types.ScriptSymbol:
		return SafetyResult{Safe: true, RequiresRestart: false, CanAutoFix: true}
	case types.VarSymbol:
		return SafetyResult{Safe: true, RequiresRestart: false, CanAutoFix: true}
	case types.EventSymbol:
		return SafetyResult{Safe: true, RequiresRestart: false, CanAutoFix: true, Suggestions: []string{"requires reinitialization of the owning instance"}}
	case types.MacroSymbol, types.EnumSymbol:
		return SafetyResult{Safe: false, RequiresRestart: false, CanAutoFix: true, Suggestions: []string{"dependents must be recompiled"}}
	default:
		return unsafeRestart("invalid symbol kind: " + sym.KindRaw)
	}
}

func unsafeRestart(reason string) SafetyResult {
	return SafetyResult{Safe: false, RequiresRestart: true, CanAutoFix: false, Suggestions: []string{reason}}
}
