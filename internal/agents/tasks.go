package agents

import (
	"fmt"
	"strings"
)

// TaskType selects the prompt shape for a task.
type TaskType string

const (
	TaskResearch  TaskType = "research"
	TaskImplement TaskType = "implement"
	TaskTest      TaskType = "test"
)

// TaskPriority labels tasks for callers; the runner treats every task the
// same.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// TaskSpec is one unit of work handed to an agent.
type TaskSpec struct {
	Type         TaskType
	Title        string
	Description  string
	Requirements []string
	Priority     TaskPriority
}

// ParseTaskType maps a user-supplied string to a TaskType.
func ParseTaskType(s string) (TaskType, error) {
	switch strings.ToLower(s) {
	case "research":
		return TaskResearch, nil
	case "implement", "implementation":
		return TaskImplement, nil
	case "test":
		return TaskTest, nil
	}
	return "", fmt.Errorf("unknown task type %q", s)
}

// ParsePriority maps a user-supplied string to a TaskPriority. Empty input
// selects medium.
func ParsePriority(s string) (TaskPriority, error) {
	switch strings.ToLower(s) {
	case "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Prompt renders the task as a model prompt. The headline depends on the task
// type, context and requirements follow, and a type-specific list of asks
// closes the prompt.
func (s TaskSpec) Prompt() string {
	var parts []string
	switch s.Type {
	case TaskResearch:
		parts = append(parts, "Research Query: "+s.Title)
	case TaskImplement:
		parts = append(parts, "Task Description: "+s.Title)
	case TaskTest:
		parts = append(parts, "Code to Test: "+s.Title)
	default:
		parts = append(parts, "Task: "+s.Title)
	}
	if s.Description != "" {
		parts = append(parts, "Context: "+s.Description)
	}
	if len(s.Requirements) > 0 {
		parts = append(parts, "Requirements:")
		for _, req := range s.Requirements {
			parts = append(parts, "- "+req)
		}
	}
	if asks := s.Type.asks(); len(asks) > 0 {
		parts = append(parts, "\nPlease provide:")
		parts = append(parts, asks...)
	}
	return strings.Join(parts, "\n")
}

func (t TaskType) asks() []string {
	switch t {
	case TaskResearch:
		return []string{
			"1. Key findings",
			"2. Supporting evidence",
			"3. Potential implications",
			"4. Areas for further investigation",
		}
	case TaskImplement:
		return []string{
			"1. Complete implementation",
			"2. Brief explanation of the approach",
			"3. Any important considerations or limitations",
		}
	case TaskTest:
		return []string{
			"1. Comprehensive test cases",
			"2. Edge cases and error scenarios",
			"3. Test coverage analysis",
			"4. Potential improvements",
		}
	}
	return nil
}
