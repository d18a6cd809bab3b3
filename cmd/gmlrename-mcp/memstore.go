package main

import (
	"sort"
	"sync"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/types"
)

// memProject is an in-memory stand-in for a real GML project index. It
// backs the resolver, occurrence, file-symbol, dependency, keyword and
// filesystem capabilities of analysis.Collaborators (not edit validation,
// parsing or transpiling), so the MCP server can be exercised end to end
// without a real parser/transpiler wired in.
type memProject struct {
	mu sync.RWMutex

	// files maps path -> source text.
	files map[string]string

	// symbols maps a full symbol id (gml/{kind}/{name}) -> its declaring file.
	symbols map[string]string

	// occurrences maps a bare symbol name -> its occurrences.
	occurrences map[string][]types.Occurrence

	// dependents maps a symbol id -> the symbols that reference it.
	dependents map[string][]analysis.Dependent
}

func newMemProject() *memProject {
	return &memProject{
		files:       make(map[string]string),
		symbols:     make(map[string]string),
		occurrences: make(map[string][]types.Occurrence),
		dependents:  make(map[string][]analysis.Dependent),
	}
}

// RegisterFile stores a file's source and its declared symbol ids.
func (m *memProject) RegisterFile(path, source string, declared []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = source
	for _, id := range declared {
		m.symbols[id] = path
	}
}

// RegisterOccurrence adds one occurrence of name (bare, unqualified) to
// the project's occurrence index.
func (m *memProject) RegisterOccurrence(name string, occ types.Occurrence) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.occurrences[name] = append(m.occurrences[name], occ)
}

// RegisterDependent records that dependentID references symbolID, so a
// rename or hot-reload cascade of symbolID propagates to dependentID.
func (m *memProject) RegisterDependent(symbolID string, dependentID, filePath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dependents[symbolID] = append(m.dependents[symbolID], analysis.Dependent{
		SymbolID: dependentID,
		FilePath: filePath,
	})
}

func (m *memProject) HasSymbol(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.symbols[id]
	return ok
}

func (m *memProject) Lookup(name, scopeID string) (analysis.Binding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id := range m.symbols {
		sym, err := types.ParseSymbolID(id)
		if err == nil && sym.BareName() == name {
			return analysis.Binding{Name: name}, true
		}
	}
	return analysis.Binding{}, false
}

func (m *memProject) GetSymbolAtPosition(path string, offset int) (analysis.PositionMatch, bool) {
	return analysis.PositionMatch{}, false
}

func (m *memProject) GetSymbolOccurrences(name string) ([]types.Occurrence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.Occurrence(nil), m.occurrences[name]...), nil
}

func (m *memProject) GetFileSymbols(path string) ([]analysis.FileSymbol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []analysis.FileSymbol
	for id, declaringFile := range m.symbols {
		if declaringFile == path {
			out = append(out, analysis.FileSymbol{ID: id})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProject) GetDependents(ids []string) ([]analysis.Dependent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []analysis.Dependent
	for _, id := range ids {
		out = append(out, m.dependents[id]...)
	}
	return out, nil
}

func (m *memProject) GetReservedKeywords() []string { return nil }

func (m *memProject) ReadFile(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[path], nil
}

func (m *memProject) WriteFile(path, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = text
	return nil
}

func (m *memProject) collaborators() analysis.Collaborators {
	return analysis.Collaborators{
		Resolver:     m,
		Occurrences:  m,
		FileSymbols:  m,
		Dependencies: m,
		Keywords:     m,
		FS:           m,
	}
}
