package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rhowell/taskgraph/internal/cpm"
	"github.com/rhowell/taskgraph/internal/graph"
	"github.com/rhowell/taskgraph/internal/task"
)

// Node is one task enriched with everything the analyses derive for it:
// the inverse edge list, longest-path level, and CPM timing.
type Node struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
	Level        int      `json:"level"`
	Duration     float64  `json:"duration"`

	EarliestStart  float64 `json:"earliest_start"`
	EarliestFinish float64 `json:"earliest_finish"`
	LatestStart    float64 `json:"latest_start"`
	LatestFinish   float64 `json:"latest_finish"`
	Slack          float64 `json:"slack"`
	CriticalPath   bool    `json:"critical_path"`
}

// Edge is one dependency relationship: From is the dependency, To the
// dependent. Critical is true iff both endpoints are on the critical path.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Critical bool   `json:"critical"`
}

// Graph is the fully assembled analysis result for one snapshot. It is
// rebuilt from scratch on every call and never mutated afterwards.
type Graph struct {
	Nodes           []Node     `json:"nodes"`
	Edges           []Edge     `json:"edges"`
	Cycles          [][]string `json:"cycles"`
	CriticalPath    []string   `json:"critical_path"`
	Bottlenecks     []string   `json:"bottlenecks"`
	Levels          [][]Node   `json:"levels"`
	ProjectDuration float64    `json:"project_duration"`
}

// BuildGraph runs the structural build and the CPM pass over a snapshot
// and assembles the combined graph.
func BuildGraph(tasks []task.Task) *Graph {
	g := graph.Build(tasks)
	sched := cpm.Analyze(g)

	out := &Graph{
		Cycles:          g.DetectCycles(),
		CriticalPath:    sched.CriticalPath,
		Bottlenecks:     sched.Bottlenecks,
		ProjectDuration: sched.ProjectDuration,
	}

	critical := make(map[string]bool, len(sched.CriticalPath))
	for _, id := range sched.CriticalPath {
		critical[id] = true
	}

	// Nodes in level order, id tiebreak, so output is stable across runs.
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

	for _, id := range ids {
		t := g.Tasks[id]
		s := sched.Tasks[id]
		out.Nodes = append(out.Nodes, Node{
			ID:             id,
			Title:          t.Title,
			Status:         t.Status,
			Priority:       t.Priority,
			Dependencies:   append([]string{}, g.Deps[id]...),
			Dependents:     append([]string{}, g.Dependents[id]...),
			Level:          g.Levels[id],
			Duration:       task.Duration(t),
			EarliestStart:  s.ES,
			EarliestFinish: s.EF,
			LatestStart:    s.LS,
			LatestFinish:   s.LF,
			Slack:          s.Slack,
			CriticalPath:   critical[id],
		})
	}

	for _, id := range ids {
		for _, dep := range g.Deps[id] {
			out.Edges = append(out.Edges, Edge{
				From:     dep,
				To:       id,
				Critical: critical[dep] && critical[id],
			})
		}
	}

	if len(out.Nodes) > 0 {
		out.Levels = make([][]Node, g.MaxLevel()+1)
		for _, n := range out.Nodes {
			out.Levels[n.Level] = append(out.Levels[n.Level], n)
		}
	}

	return out
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Cycle is one detected cycle with a title-based description.
type Cycle struct {
	Path        []string `json:"path"`
	Description string   `json:"description"`
}

// CycleReport is the result of a standalone cycle scan.
type CycleReport struct {
	HasCycle      bool     `json:"has_cycle"`
	Cycles        []Cycle  `json:"cycles"`
	AffectedTasks []string `json:"affected_tasks"`
}

// DetectCycles scans a snapshot for multi-node dependency cycles and
// describes each one using task titles.
func DetectCycles(tasks []task.Task) *CycleReport {
	g := graph.Build(tasks)
	report := &CycleReport{}

	affected := make(map[string]bool)
	for _, path := range g.DetectCycles() {
		report.Cycles = append(report.Cycles, Cycle{
			Path:        path,
			Description: describeCycle(g, path),
		})
		for _, id := range path[:len(path)-1] {
			affected[id] = true
		}
	}

	report.HasCycle = len(report.Cycles) > 0
	for id := range affected {
		report.AffectedTasks = append(report.AffectedTasks, id)
	}
	sort.Strings(report.AffectedTasks)

	return report
}

// describeCycle renders a cycle path using task titles where available.
func describeCycle(g *graph.DepGraph, path []string) string {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		if t, ok := g.Tasks[id]; ok && t.Title != "" {
			parts = append(parts, fmt.Sprintf("%q", t.Title))
		} else {
			parts = append(parts, id)
		}
	}
	return strings.Join(parts, " -> ")
}
