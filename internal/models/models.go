package models

// DateLayout is the wire format for all calendar dates. ISO dates sort
// lexicographically in chronological order, so plain string comparison is
// safe everywhere in the codebase.
const DateLayout = "2006-01-02"

// TaskStatus is the completion status of a task
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// TaskPriority is the urgency level of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// AllPriorities returns the priorities in cycling order
func AllPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
}

// EventType categorizes a calendar event
type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventDeadline EventType = "deadline"
	EventCall     EventType = "call"
	EventPersonal EventType = "personal"
)

// AllEventTypes returns the event types in cycling order
func AllEventTypes() []EventType {
	return []EventType{EventMeeting, EventDeadline, EventCall, EventPersonal}
}

// Task represents a single to-do item
type Task struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Status   TaskStatus   `json:"status"`
	Priority TaskPriority `json:"priority"`
	DueDate  string       `json:"dueDate"`
}

// Completed returns true if the task is done
func (t Task) Completed() bool {
	return t.Status == TaskCompleted
}

// Event represents a single calendar entry. Time is a display label,
// never parsed.
type Event struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Type  EventType `json:"type"`
}

// Note represents a free-form note. Date is set at creation and not
// touched by edits.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Starred bool   `json:"starred"`
}

// Stats is the summary projection derived from tasks and events. It is
// never persisted and never patched in place; the store recomputes it
// from scratch after every task or event mutation.
type Stats struct {
	TotalTasks     int
	CompletedTasks int
	UpcomingTasks  int
	TotalEvents    int
}
