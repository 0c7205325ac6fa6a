package store

import (
	"time"

	"daydash/internal/models"
)

// Today returns the current date in the wire format.
func Today() string {
	return time.Now().Format(models.DateLayout)
}

// calculateStats recomputes the derived projection from scratch. A task
// due exactly today still counts as upcoming unless it is completed.
func calculateStats(tasks []models.Task, events []models.Event, today string) models.Stats {
	stats := models.Stats{
		TotalTasks:  len(tasks),
		TotalEvents: len(events),
	}

	for _, t := range tasks {
		if t.Completed() {
			stats.CompletedTasks++
			continue
		}
		if t.DueDate >= today {
			stats.UpcomingTasks++
		}
	}

	return stats
}
