package cpm

import (
	"math"
	"sort"

	"github.com/rhowell/taskgraph/internal/graph"
	"github.com/rhowell/taskgraph/internal/task"
)

// Epsilon is the slack tolerance for critical-path membership. Durations
// are derived floats, so "zero slack" means within this tolerance, not
// exact float equality.
const Epsilon = 0.01

// BottleneckFanout is the number of direct dependents above which a
// critical task counts as a bottleneck.
const BottleneckFanout = 2

// Analyze runs a critical path method pass over the graph: forward pass
// for earliest times, backward pass for latest times, slack, waves and
// bottlenecks. It assumes a DAG; on cyclic input the numbers come out
// finite but not meaningful, so callers validate first.
func Analyze(g *graph.DepGraph) *Result {
	order := levelOrder(g)

	durations := make(map[string]float64, len(g.Tasks))
	for id, t := range g.Tasks {
		durations[id] = task.Duration(t)
	}

	result := &Result{Tasks: make(map[string]*Schedule, len(order))}
	for _, id := range order {
		result.Tasks[id] = &Schedule{TaskID: id}
	}

	// Forward pass: ES = max EF over dependencies, EF = ES + duration.
	// Level order guarantees dependencies are scheduled first on a DAG.
	for _, id := range order {
		s := result.Tasks[id]
		es := 0.0
		for _, dep := range g.Deps[id] {
			if depS := result.Tasks[dep]; depS.EF > es {
				es = depS.EF
			}
		}
		s.ES = es
		s.EF = es + durations[id]
	}

	for _, s := range result.Tasks {
		if s.EF > result.ProjectDuration {
			result.ProjectDuration = s.EF
		}
	}

	// Backward pass in reverse level order: LF = min LS over dependents,
	// defaulting to the project finish for tasks nothing depends on.
	// Level strictly increases along edges, so every dependent is already
	// scheduled when its dependency is processed.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		s := result.Tasks[id]

		lf := result.ProjectDuration
		for _, dependent := range g.Dependents[id] {
			if depS := result.Tasks[dependent]; depS.LS < lf {
				lf = depS.LS
			}
		}
		s.LF = lf
		s.LS = lf - durations[id]
		s.Slack = s.LS - s.ES
		s.IsCritical = math.Abs(s.Slack) < Epsilon
	}

	for _, id := range order {
		if result.Tasks[id].IsCritical {
			result.CriticalPath = append(result.CriticalPath, id)
			if len(g.Dependents[id]) > BottleneckFanout {
				result.Bottlenecks = append(result.Bottlenecks, id)
			}
		}
	}

	result.Waves = computeWaves(result, g)

	return result
}

// levelOrder returns task ids sorted by level ascending, id as tiebreak.
func levelOrder(g *graph.DepGraph) []string {
	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		la, lb := g.Levels[ids[a]], g.Levels[ids[b]]
		if la != lb {
			return la < lb
		}
		return ids[a] < ids[b]
	})
	return ids
}

// computeWaves groups tasks by their earliest start time. Two tasks with
// the same ES can run concurrently.
func computeWaves(result *Result, g *graph.DepGraph) []Wave {
	esGroups := make(map[float64][]string)
	for id, s := range result.Tasks {
		esGroups[s.ES] = append(esGroups[s.ES], id)
	}

	esValues := make([]float64, 0, len(esGroups))
	for es := range esGroups {
		esValues = append(esValues, es)
	}
	sort.Float64s(esValues)

	waves := make([]Wave, len(esValues))
	for i, es := range esValues {
		taskIDs := esGroups[es]
		sort.Strings(taskIDs)

		hasCritical := false
		for _, id := range taskIDs {
			result.Tasks[id].Wave = i
			if result.Tasks[id].IsCritical {
				hasCritical = true
			}
		}

		// Critical tasks first within a wave
		sort.SliceStable(taskIDs, func(a, b int) bool {
			aCrit := result.Tasks[taskIDs[a]].IsCritical
			bCrit := result.Tasks[taskIDs[b]].IsCritical
			return aCrit && !bCrit
		})

		waves[i] = Wave{
			Index:      i,
			Start:      es,
			TaskIDs:    taskIDs,
			IsCritical: hasCritical,
		}
	}

	return waves
}
