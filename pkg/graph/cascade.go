// Package graph implements the hot-reload cascade engine: level-parallel
// BFS over the dependents edge set, isolated sequential cycle detection,
// Kahn topological ordering, and impact-graph construction with
// critical-path analysis.
package graph

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/types"
)

// Cascade is the full result of BuildCascade: every symbol reached from
// the changed set, a safe reload order for the acyclic portion, any
// cycles found in the dependents graph, and summary metadata.
type Cascade struct {
	Entries      map[string]types.CascadeEntry
	Order        []string
	Circular     [][]string
	TotalSymbols int
	MaxDistance  int
	HasCircular  bool

	// dependencyGraph records every parent->child edge observed during
	// the BFS, including edges into already-visited nodes -- those are
	// needed for topological ordering and cycle enumeration even though
	// they don't grow the cascade itself.
	dependencyGraph map[string][]string
}

type fetchResult struct {
	parent     string
	dependents []analysis.Dependent
	err        error
}

// BuildCascade performs the level-parallel BFS described in §4.9: each
// changed symbol seeds distance 0; within a level, every node's
// dependents are fetched concurrently, but the visited set and cascade
// map are mutated only in a sequential merge pass after the whole level's
// fetches complete. This is the explicit guard against false-positive
// cycles on diamond dependency patterns (a shared dependency reached
// through two parents in the same level must not look like a revisit
// mid-fanout).
func BuildCascade(queries *analysis.Queries, changed []string, logger *slog.Logger) (*Cascade, error) {
	logger.Info("building hot-reload cascade", "changed", len(changed))

	c := &Cascade{
		Entries:         make(map[string]types.CascadeEntry),
		dependencyGraph: make(map[string][]string),
	}

	visited := make(map[string]bool)
	currentLevel := make([]string, 0, len(changed))
	for _, id := range changed {
		if visited[id] {
			continue
		}
		visited[id] = true
		c.Entries[id] = types.CascadeEntry{Symbol: id, Distance: 0, Reason: "direct change"}
		currentLevel = append(currentLevel, id)
	}

	for len(currentLevel) > 0 {
		results := fetchLevel(queries, currentLevel)

		var nextLevel []string
		for _, res := range results {
			if res.err != nil {
				continue
			}
			parentEntry := c.Entries[res.parent]
			for _, dep := range res.dependents {
				c.dependencyGraph[res.parent] = append(c.dependencyGraph[res.parent], dep.SymbolID)

				if visited[dep.SymbolID] {
					continue
				}
				visited[dep.SymbolID] = true
				c.Entries[dep.SymbolID] = types.CascadeEntry{
					Symbol:   dep.SymbolID,
					Distance: parentEntry.Distance + 1,
					Reason:   "depends on " + res.parent,
					FilePath: dep.FilePath,
				}
				nextLevel = append(nextLevel, dep.SymbolID)
				if parentEntry.Distance+1 > c.MaxDistance {
					c.MaxDistance = parentEntry.Distance + 1
				}
			}
		}

		currentLevel = nextLevel
	}

	c.Circular = detectCascadeCycles(c.dependencyGraph)
	c.Order, c.HasCircular = topologicalOrder(c.Entries, c.dependencyGraph)
	if len(c.Circular) > 0 {
		c.HasCircular = true
	}
	c.TotalSymbols = len(c.Entries)

	if c.HasCircular {
		logger.Warn("cycle detected in hot-reload cascade", "cycles", len(c.Circular))
	}
	logger.Info("hot-reload cascade built", "total_symbols", c.TotalSymbols, "max_distance", c.MaxDistance)

	return c, nil
}

// fetchLevel issues one getDependents call per node in level concurrently
// and returns every result once all have completed. No shared state
// besides the result slice is touched during the fan-out.
func fetchLevel(queries *analysis.Queries, level []string) []fetchResult {
	results := make([]fetchResult, len(level))
	var wg sync.WaitGroup
	wg.Add(len(level))

	for i, parent := range level {
		go func(i int, parent string) {
			defer wg.Done()
			deps, err := queries.Dependents([]string{parent})
			results[i] = fetchResult{parent: parent, dependents: deps, err: err}
		}(i, parent)
	}

	wg.Wait()
	return results
}

// detectCascadeCycles runs a sequential DFS over the completed
// dependency graph, intentionally isolated from the BFS fan-out so its
// path state is never shared with concurrent fetches. It returns every
// cycle found, one per distinct back edge's earliest discovery.
func detectCascadeCycles(dependencyGraph map[string][]string) [][]string {
	visiting := make(map[string]bool)
	fullyExplored := make(map[string]bool)
	var cycles [][]string

	nodes := make([]string, 0, len(dependencyGraph))
	for node := range dependencyGraph {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	var path []string
	var dfs func(node string)
	dfs = func(node string) {
		if fullyExplored[node] {
			return
		}
		if visiting[node] {
			idx := indexOf(path, node)
			cycle := append(append([]string{}, path[idx:]...), node)
			cycles = append(cycles, cycle)
			return
		}

		visiting[node] = true
		path = append(path, node)

		children := append([]string{}, dependencyGraph[node]...)
		sort.Strings(children)
		for _, child := range children {
			dfs(child)
		}

		path = path[:len(path)-1]
		visiting[node] = false
		fullyExplored[node] = true
	}

	for _, node := range nodes {
		if !fullyExplored[node] {
			dfs(node)
		}
	}

	return cycles
}

func indexOf(path []string, node string) int {
	for i, n := range path {
		if n == node {
			return i
		}
	}
	return 0
}

// topologicalOrder runs Kahn's algorithm over the cascade's nodes and
// edges. Nodes that never reach in-degree 0 (because they participate in
// a cycle) are appended afterward in deterministic (sorted) order; their
// presence signals hasCircular even when detectCascadeCycles found
// nothing for an unrelated reason.
func topologicalOrder(entries map[string]types.CascadeEntry, dependencyGraph map[string][]string) ([]string, bool) {
	inDegree := make(map[string]int, len(entries))
	for node := range entries {
		inDegree[node] = 0
	}
	for _, children := range dependencyGraph {
		for _, child := range children {
			if _, ok := entries[child]; ok {
				inDegree[child]++
			}
		}
	}

	queue := make([]string, 0, len(entries))
	for node, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, node)
		}
	}
	sort.Strings(queue)

	var order []string
	emitted := make(map[string]bool)

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		emitted[u] = true

		children := append([]string{}, dependencyGraph[u]...)
		sort.Strings(children)
		var newlyZero []string
		for _, child := range children {
			if _, ok := entries[child]; !ok {
				continue
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				newlyZero = append(newlyZero, child)
			}
		}
		sort.Strings(newlyZero)
		queue = append(queue, newlyZero...)
	}

	var remaining []string
	for node := range entries {
		if !emitted[node] {
			remaining = append(remaining, node)
		}
	}
	sort.Strings(remaining)
	order = append(order, remaining...)

	return order, len(remaining) > 0
}
