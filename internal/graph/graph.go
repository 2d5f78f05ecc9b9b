package graph

import (
	"sort"

	"github.com/rhowell/taskgraph/internal/task"
)

// Build constructs a DepGraph from a task snapshot. Dependencies pointing
// at ids outside the snapshot produce no edges (the validator reports them);
// cyclic structure does not fail the build — cycles are data, reported by
// DetectCycles and the validator.
func Build(tasks []task.Task) *DepGraph {
	g := &DepGraph{
		Tasks:      make(map[string]*task.Task),
		Deps:       make(map[string][]string),
		Dependents: make(map[string][]string),
		Levels:     make(map[string]int),
	}

	for i := range tasks {
		t := &tasks[i]
		g.Tasks[t.ID] = t
	}

	// Dedupe edges so a repeated dependency entry yields one edge.
	edgeSet := make(map[[2]string]bool)
	addEdge := func(dep, dependent string) {
		key := [2]string{dep, dependent}
		if edgeSet[key] {
			return
		}
		edgeSet[key] = true
		g.Deps[dependent] = append(g.Deps[dependent], dep)
		g.Dependents[dep] = append(g.Dependents[dep], dependent)
	}

	for id, t := range g.Tasks {
		for _, dep := range t.Dependencies {
			if _, ok := g.Tasks[dep]; ok {
				addEdge(dep, id)
			}
		}
	}

	// Sort adjacency lists for deterministic ordering
	for k := range g.Deps {
		sort.Strings(g.Deps[k])
	}
	for k := range g.Dependents {
		sort.Strings(g.Dependents[k])
	}

	for id := range g.Tasks {
		if len(g.Deps[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
	}
	sort.Strings(g.Roots)

	g.computeLevels()

	return g
}

// computeLevels assigns each task its longest-path distance from a
// dependency-free task. Each top-level walk carries its own visiting set:
// a task re-entered within the same walk contributes level 0, so cyclic
// subgraphs get a conservative level instead of infinite recursion.
func (g *DepGraph) computeLevels() {
	settled := make(map[string]bool)

	var walk func(id string, visiting map[string]bool) int
	walk = func(id string, visiting map[string]bool) int {
		if settled[id] {
			return g.Levels[id]
		}
		if visiting[id] {
			return 0
		}
		visiting[id] = true
		defer delete(visiting, id)

		level := 0
		for _, dep := range g.Deps[id] {
			if l := walk(dep, visiting) + 1; l > level {
				level = l
			}
		}
		g.Levels[id] = level
		settled[id] = true
		return level
	}

	for _, id := range g.sortedIDs() {
		walk(id, make(map[string]bool))
	}
}

// DetectCycles returns every simple cycle found by a DFS over dependency
// edges. Each cycle is a closed walk: the last element repeats the first.
// Self-dependencies are skipped here; a length-1 loop is a validation
// error, not a structural cycle.
func (g *DepGraph) DetectCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, dep := range g.Deps[id] {
			if dep == id {
				continue
			}
			if onStack[dep] {
				// Back-edge: the cycle is the path slice from the first
				// occurrence of dep through the current node, closed.
				for i, p := range path {
					if p == dep {
						cycle := append([]string{}, path[i:]...)
						cycle = append(cycle, dep)
						cycles = append(cycles, cycle)
						break
					}
				}
				continue
			}
			if !visited[dep] {
				dfs(dep)
			}
		}

		path = path[:len(path)-1]
		delete(onStack, id)
	}

	// Walk every component; sorted start order keeps detection deterministic.
	for _, id := range g.sortedIDs() {
		if !visited[id] {
			dfs(id)
		}
	}
	return cycles
}

// HasCycle reports whether at least one multi-node cycle exists.
func (g *DepGraph) HasCycle() bool {
	return len(g.DetectCycles()) > 0
}

// TaskCount returns the number of tasks in the graph.
func (g *DepGraph) TaskCount() int {
	return len(g.Tasks)
}

// MaxLevel returns the highest level in the graph, or -1 when empty.
func (g *DepGraph) MaxLevel() int {
	max := -1
	for _, l := range g.Levels {
		if l > max {
			max = l
		}
	}
	return max
}

func (g *DepGraph) sortedIDs() []string {
	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
