// Package analysis defines the narrow capability interfaces the core
// consumes the external semantic analyzer, parser, and transpiler
// through, plus the thin Queries adapter and the two session-scoped
// caches that sit in front of them.
//
// Every collaborator method is optional. Rather than probing a fat
// interface with reflection at call sites, callers build a Collaborators
// struct naming exactly which capabilities they have, and the adapter
// feature-detects by checking which fields are non-nil.
package analysis

import "github.com/mamaar/gmlrename/pkg/types"

// Binding is what a SymbolResolver.Lookup call returns when a name
// resolves in a scope.
type Binding struct {
	Name string
}

// PositionMatch is what SymbolResolver.GetSymbolAtPosition returns when an
// offset falls within a known symbol's range.
type PositionMatch struct {
	SymbolID string
	Name     string
	Start    int
	End      int
}

// SymbolResolver answers existence and scope-lookup questions about
// symbols. All methods are optional capabilities of the semantic analyzer.
type SymbolResolver interface {
	HasSymbol(id string) bool
	Lookup(name string, scopeID string) (Binding, bool)
	GetSymbolAtPosition(path string, offset int) (PositionMatch, bool)
}

// OccurrenceTracker enumerates where a symbol is defined and referenced.
type OccurrenceTracker interface {
	GetSymbolOccurrences(name string) ([]types.Occurrence, error)
}

// FileSymbol is one symbol id reported by a FileSymbolProvider.
type FileSymbol struct {
	ID string
}

// FileSymbolProvider lists the symbols defined in a file.
type FileSymbolProvider interface {
	GetFileSymbols(path string) ([]FileSymbol, error)
}

// Dependent is one symbol that depends on a queried symbol, along with the
// file it lives in.
type Dependent struct {
	SymbolID string
	FilePath string
}

// DependencyAnalyzer reports the dependents of a set of symbol ids -- the
// "parent → dependent" (reload direction) edges the cascade engine walks.
type DependencyAnalyzer interface {
	GetDependents(ids []string) ([]Dependent, error)
}

// KeywordProvider supplies additional reserved keywords beyond the
// default set, e.g. project-specific built-ins.
type KeywordProvider interface {
	GetReservedKeywords() []string
}

// EditValidationResult is what an EditValidator returns: any errors or
// warnings the semantic analyzer found in a proposed WorkspaceEdit.
type EditValidationResult struct {
	Errors   []string
	Warnings []string
}

// EditValidator lets the semantic analyzer perform additional,
// analyzer-specific validation of a workspace edit before it's applied.
type EditValidator interface {
	ValidateEdits(ws types.WorkspaceEdit) (EditValidationResult, error)
}

// AstNode is the parser's minimal output shape, used only as a fallback
// for position→symbol lookup when no SymbolResolver is present.
type AstNode struct {
	Type     string
	Name     string
	Start    int
	End      int
	Children []AstNode
}

// ParserBridge parses a file into an AstNode tree.
type ParserBridge interface {
	Parse(path string) (AstNode, error)
}

// TranspileRequest is the input to a TranspilerBridge call.
type TranspileRequest struct {
	SourceText string
	SymbolID   string
}

// TranspilerBridge turns a source text + symbol id into an opaque patch
// payload. The core never inspects the payload's shape.
type TranspilerBridge interface {
	TranspileScript(req TranspileRequest) (any, error)
}

// Filesystem is the injected I/O boundary. The core never touches the OS
// directly.
type Filesystem interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, text string) error
}

// FileRenamer is an optional Filesystem extension for renaming a file on
// disk.
type FileRenamer interface {
	RenameFile(oldPath, newPath string) error
}

// FileDeleter is an optional Filesystem extension for deleting a file.
type FileDeleter interface {
	DeleteFile(path string) error
}

// Collaborators names exactly which optional capabilities a caller
// provides. Every field may be nil; adapters feature-detect by checking
// for nil rather than probing methods at runtime.
type Collaborators struct {
	Resolver     SymbolResolver
	Occurrences  OccurrenceTracker
	FileSymbols  FileSymbolProvider
	Dependencies DependencyAnalyzer
	Keywords     KeywordProvider
	EditCheck    EditValidator
	Parser       ParserBridge
	Transpiler   TranspilerBridge
	FS           Filesystem
}
