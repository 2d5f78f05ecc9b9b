package analysis

import (
	"github.com/rhowell/taskgraph/internal/config"
	"github.com/rhowell/taskgraph/internal/graph"
	"github.com/rhowell/taskgraph/internal/task"
	"github.com/rhowell/taskgraph/internal/validate"
)

// Scenario types for hypothetical edge mutations.
const (
	ScenarioAddDependency    = "add_dependency"
	ScenarioRemoveDependency = "remove_dependency"
)

// Change is one hypothetical edge mutation: TaskID gains or loses a
// dependency on DependencyID.
type Change struct {
	TaskID       string `json:"task_id"`
	DependencyID string `json:"dependency_id"`
}

// Scenario is a batch of hypothetical mutations of one type.
type Scenario struct {
	Type    string   `json:"type"`
	Changes []Change `json:"changes"`
}

// GraphStats summarizes a graph's size for delta reporting.
type GraphStats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// WhatIfResult reports the structural effect of a scenario and whether the
// hypothetical snapshot would still validate.
type WhatIfResult struct {
	Before     GraphStats      `json:"before"`
	After      GraphStats      `json:"after"`
	NodeDelta  int             `json:"node_delta"`
	EdgeDelta  int             `json:"edge_delta"`
	Validation validate.Result `json:"validation"`
}

// WhatIf evaluates a hypothetical dependency mutation against a snapshot.
// The scenario is applied to a deep copy; the caller's task list is never
// touched, so a later build over the original sees no trace of it.
func WhatIf(tasks []task.Task, scenario Scenario, cfg config.Config) WhatIfResult {
	before := graph.Build(tasks)

	mutated := task.CloneAll(tasks)
	byID := make(map[string]*task.Task, len(mutated))
	for i := range mutated {
		byID[mutated[i].ID] = &mutated[i]
	}

	for _, ch := range scenario.Changes {
		t, ok := byID[ch.TaskID]
		if !ok {
			continue
		}
		switch scenario.Type {
		case ScenarioAddDependency:
			if !contains(t.Dependencies, ch.DependencyID) {
				t.Dependencies = append(t.Dependencies, ch.DependencyID)
			}
		case ScenarioRemoveDependency:
			t.Dependencies = remove(t.Dependencies, ch.DependencyID)
		}
	}

	after := graph.Build(mutated)

	return WhatIfResult{
		Before:     stats(before),
		After:      stats(after),
		NodeDelta:  after.TaskCount() - before.TaskCount(),
		EdgeDelta:  edgeCount(after) - edgeCount(before),
		Validation: validate.Check(mutated, cfg),
	}
}

// Update replaces one task's whole dependency list.
type Update struct {
	TaskID       string   `json:"task_id"`
	Dependencies []string `json:"dependencies"`
}

// BulkValidate previews a batch of dependency-list replacements: the
// updates are applied to a copy and validated, nothing is committed.
func BulkValidate(tasks []task.Task, updates []Update, cfg config.Config) validate.Result {
	mutated := task.CloneAll(tasks)
	byID := make(map[string]*task.Task, len(mutated))
	for i := range mutated {
		byID[mutated[i].ID] = &mutated[i]
	}

	for _, u := range updates {
		if t, ok := byID[u.TaskID]; ok {
			t.Dependencies = append([]string{}, u.Dependencies...)
		}
	}

	return validate.Check(mutated, cfg)
}

func stats(g *graph.DepGraph) GraphStats {
	return GraphStats{Nodes: g.TaskCount(), Edges: edgeCount(g)}
}

func edgeCount(g *graph.DepGraph) int {
	n := 0
	for _, deps := range g.Deps {
		n += len(deps)
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
