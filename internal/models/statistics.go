package models

// Statistics represents aggregate task and user counts
type Statistics struct {
	TotalTasks      int64            `json:"totalTasks"`
	TotalUsers      int64            `json:"totalUsers"`
	TasksByStatus   map[string]int64 `json:"tasksByStatus"`
	TasksByPriority map[string]int64 `json:"tasksByPriority"`
}
