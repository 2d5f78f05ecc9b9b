// Package snapshot loads task lists from tracker export JSON. Exports in
// the wild are messy — priorities arrive as numbers or strings, fields go
// missing — so parsing is tolerant field extraction rather than strict
// unmarshal.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/rhowell/taskgraph/internal/task"
)

// Load reads a snapshot from a file path, or stdin when path is "-".
func Load(path string) ([]task.Task, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return Parse(data)
}

// Parse extracts tasks from export JSON. Accepts either a top-level array
// or an object with a "tasks" array. Task ids must be unique; a duplicate
// id is a malformed export, not a graph problem, so it fails the load.
func Parse(data []byte) ([]task.Task, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("snapshot is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("tasks")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("snapshot has no task array")
	}

	var tasks []task.Task
	seen := make(map[string]bool)
	var parseErr error

	list.ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		if id == "" {
			parseErr = fmt.Errorf("task %d has no id", len(tasks))
			return false
		}
		if seen[id] {
			parseErr = fmt.Errorf("duplicate task id %q", id)
			return false
		}
		seen[id] = true

		t := task.Task{
			ID:          id,
			Title:       item.Get("title").String(),
			Status:      normalizeStatus(item.Get("status").String()),
			Priority:    normalizePriority(item.Get("priority")),
			Description: item.Get("description").String(),
		}
		item.Get("dependencies").ForEach(func(_, dep gjson.Result) bool {
			t.Dependencies = append(t.Dependencies, dep.String())
			return true
		})

		tasks = append(tasks, t)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return tasks, nil
}

// normalizeStatus maps common tracker spellings onto the engine's enum.
// Unknown statuses pass through untouched; the engine treats them as
// neither open nor done.
func normalizeStatus(status string) string {
	switch status {
	case "open", "pending", "":
		return task.StatusTodo
	case "in_progress", "doing":
		return task.StatusInProgress
	case "closed", "completed":
		return task.StatusDone
	default:
		return status
	}
}

// normalizePriority accepts "high"/"medium"/"low" or the numeric scheme
// some trackers export (0 = highest).
func normalizePriority(p gjson.Result) string {
	if p.Type == gjson.Number {
		switch p.Int() {
		case 0:
			return task.PriorityHigh
		case 1:
			return task.PriorityMedium
		default:
			return task.PriorityLow
		}
	}
	switch p.String() {
	case task.PriorityHigh, task.PriorityMedium, task.PriorityLow:
		return p.String()
	case "":
		return task.PriorityMedium
	default:
		return p.String()
	}
}
