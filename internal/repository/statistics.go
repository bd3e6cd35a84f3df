package repository

import (
	"context"
	"fmt"

	"github.com/taskhive/task-service/internal/models"
)

func (r *Repository) countByColumn(ctx context.Context, column string, keys []string) (map[string]int64, error) {
	// column is always a trusted literal, never caller input
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM tasks GROUP BY %s`, column, column)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int64, len(keys))
	for _, key := range keys {
		counts[key] = 0
	}
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count tasks by %s: %w", column, err)
	}
	return counts, nil
}

// Statistics computes aggregate task and user counts
func (r *Repository) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{}

	byStatus, err := r.countByColumn(ctx, "status", models.Statuses())
	if err != nil {
		return nil, err
	}
	stats.TasksByStatus = byStatus

	byPriority, err := r.countByColumn(ctx, "priority", models.Priorities())
	if err != nil {
		return nil, err
	}
	stats.TasksByPriority = byPriority

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&stats.TotalTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return stats, nil
}
