package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rhowell/taskgraph/internal/analysis"
	"github.com/rhowell/taskgraph/internal/config"
	"github.com/rhowell/taskgraph/internal/engine"
	"github.com/rhowell/taskgraph/internal/task"
	"github.com/rhowell/taskgraph/internal/validate"
	"github.com/rhowell/taskgraph/internal/viz"
)

func fixture() []task.Task {
	return []task.Task{
		{ID: "a", Title: "Root task", Status: task.StatusDone, Priority: task.PriorityHigh},
		{ID: "b", Title: "Follow-up", Status: task.StatusTodo, Priority: task.PriorityLow, Dependencies: []string{"a"}},
	}
}

func TestGraph(t *testing.T) {
	var buf bytes.Buffer
	Graph(&buf, engine.BuildGraph(fixture()))

	out := buf.String()
	for _, want := range []string{"Dependency Graph", "2 tasks", "Level 0", "Level 1", "Root task", "Critical path:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidation(t *testing.T) {
	tasks := []task.Task{{ID: "a", Status: task.StatusTodo, Dependencies: []string{"ghost"}}}

	var buf bytes.Buffer
	Validation(&buf, validate.Check(tasks, config.Default()))

	out := buf.String()
	if !strings.Contains(out, "invalid") {
		t.Errorf("expected invalid verdict:\n%s", out)
	}
	if !strings.Contains(out, "nonexistent") {
		t.Errorf("expected nonexistent error kind:\n%s", out)
	}
}

func TestCycles_Empty(t *testing.T) {
	var buf bytes.Buffer
	Cycles(&buf, nil)

	if !strings.Contains(buf.String(), "no dependency cycles") {
		t.Errorf("expected clean message, got:\n%s", buf.String())
	}
}

func TestCycles(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Title: "A", Status: task.StatusTodo, Dependencies: []string{"b"}},
		{ID: "b", Title: "B", Status: task.StatusTodo, Dependencies: []string{"a"}},
	}

	var buf bytes.Buffer
	Cycles(&buf, viz.ForCycles(engine.BuildGraph(tasks)))

	out := buf.String()
	if !strings.Contains(out, "1 cycle(s) found") {
		t.Errorf("expected cycle count:\n%s", out)
	}
	if !strings.Contains(out, "a -> b -> a") && !strings.Contains(out, "b -> a -> b") {
		t.Errorf("expected cycle path:\n%s", out)
	}
}

func TestTree(t *testing.T) {
	node := analysis.DependencyTree(fixture(), "b", 5)

	var buf bytes.Buffer
	Tree(&buf, node)

	out := buf.String()
	if !strings.Contains(out, "b") || !strings.Contains(out, "a") {
		t.Errorf("expected both tasks in tree:\n%s", out)
	}

	buf.Reset()
	Tree(&buf, nil)
	if !strings.Contains(buf.String(), "not found") {
		t.Errorf("expected not-found marker, got:\n%s", buf.String())
	}
}

func TestTimeline(t *testing.T) {
	g := engine.BuildGraph(fixture())

	var buf bytes.Buffer
	Timeline(&buf, viz.CriticalPathTimeline(g), g.ProjectDuration)

	out := buf.String()
	if !strings.Contains(out, "Critical Path Timeline") {
		t.Errorf("expected header:\n%s", out)
	}
}

func TestImpact(t *testing.T) {
	var buf bytes.Buffer
	Impact(&buf, analysis.AnalyzeImpact(fixture(), "a"))

	out := buf.String()
	if !strings.Contains(out, "Impact of") || !strings.Contains(out, "b") {
		t.Errorf("expected impact summary:\n%s", out)
	}
}
