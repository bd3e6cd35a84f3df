package models

import "time"

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a work item owned by its creator
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedBy   int64      `json:"createdBy"`
	AssignedTo  *int64     `json:"assignedTo"`
	Tags        []string   `json:"tags"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ValidStatus reports whether s is a known task status
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is a known task priority
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Statuses lists every task status
func Statuses() []string {
	return []string{StatusPending, StatusInProgress, StatusCompleted}
}

// Priorities lists every task priority
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh}
}
