package domain

import "fmt"

// Task is something time can be logged against. It is either an *Issue
// fetched from the tracker or a *StaticTask read from configuration.
type Task interface {
	Key() string
	String() string
	isTask()
}

// Issue is a tracker issue with its raw, decoded JSON fields.
type Issue struct {
	IssueKey string
	Fields   map[string]any
}

func (i *Issue) Key() string { return i.IssueKey }

// Summary returns the issue summary, or "" when the field is missing or not a string.
func (i *Issue) Summary() string {
	s, _ := i.Fields["summary"].(string)
	return s
}

func (i *Issue) String() string {
	if s := i.Summary(); s != "" {
		return fmt.Sprintf("%s - %s", i.IssueKey, s)
	}
	return i.IssueKey
}

func (*Issue) isTask() {}

// StaticTask is a configured task whose attributes are already resolved.
type StaticTask struct {
	TaskKey     string
	Description string
	Attributes  []WorkAttribute
}

func (s *StaticTask) Key() string { return s.TaskKey }

func (s *StaticTask) String() string {
	if s.Description == "" {
		return s.TaskKey
	}
	return fmt.Sprintf("%s - %s", s.TaskKey, s.Description)
}

func (*StaticTask) isTask() {}
