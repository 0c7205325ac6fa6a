package store

import "daydash/internal/models"

// Seed collections used when a persisted record is missing or fails to
// decode. Each call returns a fresh slice.

func SeedTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Complete project proposal", Status: models.TaskPending, Priority: models.PriorityHigh, DueDate: "2023-12-15"},
		{ID: 2, Title: "Review team submissions", Status: models.TaskPending, Priority: models.PriorityMedium, DueDate: "2023-12-14"},
		{ID: 3, Title: "Schedule client meeting", Status: models.TaskCompleted, Priority: models.PriorityHigh, DueDate: "2023-12-10"},
		{ID: 4, Title: "Update documentation", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: "2023-12-20"},
		{ID: 5, Title: "Prepare presentation slides", Status: models.TaskPending, Priority: models.PriorityMedium, DueDate: "2023-12-18"},
	}
}

func SeedEvents() []models.Event {
	return []models.Event{
		{ID: 1, Title: "Team Meeting", Date: "2023-12-15", Time: "10:00 AM", Type: models.EventMeeting},
		{ID: 2, Title: "Project Deadline", Date: "2023-12-20", Time: "11:30 AM", Type: models.EventDeadline},
		{ID: 3, Title: "Client Call", Date: "2023-12-18", Time: "2:00 PM", Type: models.EventCall},
		{ID: 4, Title: "Lunch with Team", Date: "2023-12-15", Time: "12:30 PM", Type: models.EventPersonal},
	}
}

func SeedNotes() []models.Note {
	return []models.Note{
		{
			ID:      1,
			Title:   "Project Ideas",
			Content: "Brainstorming for the new marketing campaign. Need to focus on social media presence and content strategy.",
			Date:    "2023-12-10",
			Starred: true,
		},
		{
			ID:      2,
			Title:   "Meeting Notes",
			Content: "Discussed project timeline and resource allocation. Next steps: finalize budget by Friday.",
			Date:    "2023-12-08",
			Starred: false,
		},
		{
			ID:      3,
			Title:   "Research Findings",
			Content: "Key insights from market research: 1. Users prefer mobile-first approach. 2. Competitors are focusing on AI features.",
			Date:    "2023-12-05",
			Starred: true,
		},
	}
}
