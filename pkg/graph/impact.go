package graph

import (
	"log/slog"

	"github.com/mamaar/gmlrename/pkg/types"
)

// BuildImpactGraph turns a completed Cascade into the impact-graph view
// used for reporting: one ImpactGraphNode per cascade entry, with
// dependents/dependsOn edges and the node's BFS cascade distance, plus the
// length of the critical (longest) acyclic chain across the whole graph.
func BuildImpactGraph(cascade *Cascade, logger *slog.Logger) types.ImpactAnalysis {
	nodes := make(map[string]types.ImpactGraphNode, len(cascade.Entries))

	dependsOn := make(map[string][]string)
	for parent, children := range cascade.dependencyGraph {
		for _, child := range children {
			dependsOn[child] = append(dependsOn[child], parent)
		}
	}

	for symbol, entry := range cascade.Entries {
		sym, err := types.ParseSymbolID(symbol)
		name := symbol
		if err == nil {
			name = sym.BareName()
		}
		nodes[symbol] = types.ImpactGraphNode{
			Symbol:             symbol,
			SymbolName:         name,
			Distance:           entry.Distance,
			IsDirectlyAffected: entry.Distance == 0,
			Dependents:         append([]string{}, cascade.dependencyGraph[symbol]...),
			DependsOn:          append([]string{}, dependsOn[symbol]...),
			FilePath:           entry.FilePath,
		}
	}

	critical := criticalPathLength(cascade, nodes)
	for symbol, node := range nodes {
		node.EstimatedReloadTime = estimateReloadTime(node)
		nodes[symbol] = node
	}

	if len(cascade.Circular) > 0 {
		logger.Warn("impact graph contains cycles", "cycles", len(cascade.Circular))
	}
	logger.Info("impact graph built", "nodes", len(nodes), "critical_path", critical)

	return types.ImpactAnalysis{
		Nodes:           nodes,
		Cycles:          cascade.Circular,
		CriticalPathLen: critical,
	}
}

// criticalPathLength computes the longest simple dependency chain
// reachable from any directly-changed symbol, walking the acyclic
// topological order produced for the cascade. Cyclic members are
// excluded from the DP since "simple chain" forbids revisiting a node.
func criticalPathLength(cascade *Cascade, nodes map[string]types.ImpactGraphNode) int {
	inCycle := make(map[string]bool)
	for _, cycle := range cascade.Circular {
		for _, id := range cycle {
			inCycle[id] = true
		}
	}

	longest := make(map[string]int, len(nodes))
	best := 0

	for _, symbol := range cascade.Order {
		if inCycle[symbol] {
			continue
		}
		length := 1
		for _, parent := range nodes[symbol].DependsOn {
			if inCycle[parent] {
				continue
			}
			if candidate := longest[parent] + 1; candidate > length {
				length = candidate
			}
		}
		longest[symbol] = length
		if length > best {
			best = length
		}
	}

	return best
}

// estimateReloadTime is a coarse, deterministic cost model: one unit per
// hop of distance plus one unit per dependent that must also be notified.
// It exists to give reporting surfaces a relative ordering, not a wall
// clock prediction.
func estimateReloadTime(node types.ImpactGraphNode) int {
	return node.Distance + len(node.Dependents)
}
