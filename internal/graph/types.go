package graph

import "github.com/rhowell/taskgraph/internal/task"

// DepGraph is the structural index over one task snapshot: who depends on
// whom, the inverse, and the longest-path level of every task. It is built
// fresh per call and discarded after use; nothing is mutated in place
// between builds.
type DepGraph struct {
	Tasks      map[string]*task.Task
	Deps       map[string][]string // task -> dependency ids present in the snapshot
	Dependents map[string][]string // task -> ids that depend on it
	Levels     map[string]int      // longest-path distance from a dependency-free task
	Roots      []string            // tasks with no dependencies in the snapshot
}
