package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rhowell/taskgraph/internal/config"
	"github.com/rhowell/taskgraph/internal/graph"
	"github.com/rhowell/taskgraph/internal/task"
)

// Issue kinds. Errors make the snapshot invalid; warnings do not.
const (
	KindCircular    = "circular"
	KindSelf        = "self"
	KindNonexistent = "nonexistent"

	KindDeepChain = "deep_chain"
	KindManyDeps  = "many_dependencies"
)

// Issue is one structural problem found in a snapshot.
type Issue struct {
	Kind    string   `json:"kind"`
	TaskIDs []string `json:"task_ids"`
	Message string   `json:"message"`
}

// Result is the outcome of a validation pass. IsValid is true iff there
// are no errors; warnings never affect validity.
type Result struct {
	IsValid  bool    `json:"is_valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Check validates a task snapshot: cycles, self-dependencies, dangling
// dependency ids, deep chains and overloaded tasks. The kinds are not
// mutually exclusive; one task can trigger several.
func Check(tasks []task.Task, cfg config.Config) Result {
	cfg.Normalize()
	g := graph.Build(tasks)

	var errors, warnings []Issue

	for _, cycle := range g.DetectCycles() {
		members := cycle[:len(cycle)-1]
		errors = append(errors, Issue{
			Kind:    KindCircular,
			TaskIDs: append([]string{}, members...),
			Message: fmt.Sprintf("circular dependency: %s", strings.Join(cycle, " -> ")),
		})
	}

	for _, id := range sortedIDs(tasks) {
		t := g.Tasks[id]

		for _, dep := range t.Dependencies {
			if dep == id {
				errors = append(errors, Issue{
					Kind:    KindSelf,
					TaskIDs: []string{id},
					Message: fmt.Sprintf("task %s depends on itself", id),
				})
				continue
			}
			if _, ok := g.Tasks[dep]; !ok {
				errors = append(errors, Issue{
					Kind:    KindNonexistent,
					TaskIDs: []string{id, dep},
					Message: fmt.Sprintf("task %s depends on unknown task %s", id, dep),
				})
			}
		}

		if depth := chainDepth(g, id); depth > cfg.MaxChainDepth {
			warnings = append(warnings, Issue{
				Kind:    KindDeepChain,
				TaskIDs: []string{id},
				Message: fmt.Sprintf("task %s has a dependency chain %d deep (max %d)", id, depth, cfg.MaxChainDepth),
			})
		}
		if len(t.Dependencies) > cfg.MaxDirectDeps {
			warnings = append(warnings, Issue{
				Kind:    KindManyDeps,
				TaskIDs: []string{id},
				Message: fmt.Sprintf("task %s has %d direct dependencies (max %d)", id, len(t.Dependencies), cfg.MaxDirectDeps),
			})
		}
	}

	return Result{
		IsValid:  len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// chainDepth measures the longest dependency chain below a task. Each call
// walks fresh with its own visited set, so cyclic chains terminate at the
// revisit instead of recursing forever.
func chainDepth(g *graph.DepGraph, id string) int {
	var walk func(id string, visiting map[string]bool) int
	walk = func(id string, visiting map[string]bool) int {
		if visiting[id] {
			return 0
		}
		visiting[id] = true
		defer delete(visiting, id)

		deepest := 0
		for _, dep := range g.Deps[id] {
			if d := walk(dep, visiting) + 1; d > deepest {
				deepest = d
			}
		}
		return deepest
	}
	return walk(id, make(map[string]bool))
}

func sortedIDs(tasks []task.Task) []string {
	ids := make([]string, 0, len(tasks))
	for i := range tasks {
		ids = append(ids, tasks[i].ID)
	}
	sort.Strings(ids)
	return ids
}
