package analysis

import (
	"sort"

	"github.com/rhowell/taskgraph/internal/cpm"
	"github.com/rhowell/taskgraph/internal/graph"
	"github.com/rhowell/taskgraph/internal/task"
)

// Processable returns tasks that can start right now: status todo with
// every dependency done. Dependencies on unknown ids keep a task blocked
// until the snapshot resolves them.
func Processable(tasks []task.Task) []task.Task {
	g := graph.Build(tasks)

	var ready []task.Task
	for i := range tasks {
		t := &tasks[i]
		if t.Status != task.StatusTodo {
			continue
		}
		ok := true
		for _, dep := range t.Dependencies {
			depTask, known := g.Tasks[dep]
			if !known || !depTask.IsDone() {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, *t)
		}
	}
	sortTasks(ready)
	return ready
}

// Blocking returns unfinished tasks that hold up at least one todo task.
func Blocking(tasks []task.Task) []task.Task {
	g := graph.Build(tasks)

	var blocking []task.Task
	for i := range tasks {
		t := &tasks[i]
		if t.IsDone() {
			continue
		}
		for _, dependent := range g.Dependents[t.ID] {
			if g.Tasks[dependent].Status == task.StatusTodo {
				blocking = append(blocking, *t)
				break
			}
		}
	}
	sortTasks(blocking)
	return blocking
}

// TreeNode is one task in an expanded dependency tree.
type TreeNode struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Status       string      `json:"status"`
	Priority     string      `json:"priority"`
	Dependencies []*TreeNode `json:"dependencies,omitempty"`
}

// DependencyTree expands a task's dependencies down to maxDepth levels.
// Unknown ids and non-positive depth yield nil. A task revisited within
// the same branch becomes a leaf, so cyclic structure cannot recurse
// forever; subtrees past maxDepth are cut off.
func DependencyTree(tasks []task.Task, id string, maxDepth int) *TreeNode {
	if maxDepth <= 0 {
		return nil
	}
	g := graph.Build(tasks)
	if _, ok := g.Tasks[id]; !ok {
		return nil
	}
	return expandTree(g, id, maxDepth, make(map[string]bool))
}

func expandTree(g *graph.DepGraph, id string, depth int, visiting map[string]bool) *TreeNode {
	t := g.Tasks[id]
	node := &TreeNode{
		ID:       t.ID,
		Title:    t.Title,
		Status:   t.Status,
		Priority: t.Priority,
	}
	if depth <= 1 || visiting[id] {
		return node
	}

	visiting[id] = true
	defer delete(visiting, id)

	for _, dep := range g.Deps[id] {
		if dep == id {
			continue
		}
		node.Dependencies = append(node.Dependencies, expandTree(g, dep, depth-1, visiting))
	}
	return node
}

// Impact describes what completing or changing a task touches downstream.
type Impact struct {
	TaskID            string   `json:"task_id"`
	Direct            []string `json:"direct"`
	Total             []string `json:"total"`
	CriticalPathTasks []string `json:"critical_path_tasks"`
}

// AnalyzeImpact computes the direct and transitive dependents of a task,
// and which of those sit on the critical path. The closure walks an
// explicit frontier with a visited set, so it terminates on cyclic graphs
// too. Unknown ids yield an empty impact, not an error.
func AnalyzeImpact(tasks []task.Task, id string) Impact {
	impact := Impact{TaskID: id}
	g := graph.Build(tasks)
	if _, ok := g.Tasks[id]; !ok {
		return impact
	}

	impact.Direct = append([]string{}, g.Dependents[id]...)

	// BFS over dependents
	visited := map[string]bool{id: true}
	frontier := append([]string{}, g.Dependents[id]...)
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		impact.Total = append(impact.Total, cur)
		frontier = append(frontier, g.Dependents[cur]...)
	}
	sort.Strings(impact.Total)

	sched := cpm.Analyze(g)
	critical := make(map[string]bool, len(sched.CriticalPath))
	for _, cid := range sched.CriticalPath {
		critical[cid] = true
	}
	for _, tid := range impact.Total {
		if critical[tid] {
			impact.CriticalPathTasks = append(impact.CriticalPathTasks, tid)
		}
	}

	return impact
}

// sortTasks orders tasks by id for stable output.
func sortTasks(ts []task.Task) {
	sort.Slice(ts, func(a, b int) bool { return ts[a].ID < ts[b].ID })
}
