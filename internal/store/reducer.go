package store

import (
	"slices"

	"daydash/internal/models"
)

// apply is the single transition function: (state, action) -> state. It
// is total — every action yields a complete new state, and an action
// referencing an unknown id returns the input state untouched (applied
// reports false so the caller can log it). Input slices are never
// mutated; changed collections are fresh copies.
func apply(state State, action Action, today string) (next State, applied bool) {
	switch a := action.(type) {
	case AddTask:
		state.Tasks = append(slices.Clone(state.Tasks), a.Task)
		state.Stats = calculateStats(state.Tasks, state.Events, today)
		return state, true

	case UpdateTask:
		tasks, ok := replaceTask(state.Tasks, a.Task)
		if !ok {
			return state, false
		}
		state.Tasks = tasks
		state.Stats = calculateStats(state.Tasks, state.Events, today)
		return state, true

	case DeleteTask:
		tasks, ok := deleteTask(state.Tasks, a.ID)
		if !ok {
			return state, false
		}
		state.Tasks = tasks
		state.Stats = calculateStats(state.Tasks, state.Events, today)
		return state, true

	case AddEvent:
		state.Events = append(slices.Clone(state.Events), a.Event)
		state.Stats = calculateStats(state.Tasks, state.Events, today)
		return state, true

	case UpdateEvent:
		events, ok := replaceEvent(state.Events, a.Event)
		if !ok {
			return state, false
		}
		state.Events = events
		state.Stats = calculateStats(state.Tasks, state.Events, today)
		return state, true

	case DeleteEvent:
		events, ok := deleteEvent(state.Events, a.ID)
		if !ok {
			return state, false
		}
		state.Events = events
		state.Stats = calculateStats(state.Tasks, state.Events, today)
		return state, true

	case AddNote:
		// Notes do not feed the derived stats.
		state.Notes = append(slices.Clone(state.Notes), a.Note)
		return state, true

	case UpdateNote:
		notes, ok := replaceNote(state.Notes, a.Note)
		if !ok {
			return state, false
		}
		state.Notes = notes
		return state, true

	case DeleteNote:
		notes, ok := deleteNote(state.Notes, a.ID)
		if !ok {
			return state, false
		}
		state.Notes = notes
		return state, true

	case ToggleStarNote:
		idx := slices.IndexFunc(state.Notes, func(n models.Note) bool { return n.ID == a.ID })
		if idx < 0 {
			return state, false
		}
		notes := slices.Clone(state.Notes)
		notes[idx].Starred = !notes[idx].Starred
		state.Notes = notes
		return state, true
	}

	return state, false
}

func replaceTask(tasks []models.Task, t models.Task) ([]models.Task, bool) {
	idx := slices.IndexFunc(tasks, func(x models.Task) bool { return x.ID == t.ID })
	if idx < 0 {
		return tasks, false
	}
	out := slices.Clone(tasks)
	out[idx] = t
	return out, true
}

func deleteTask(tasks []models.Task, id int64) ([]models.Task, bool) {
	idx := slices.IndexFunc(tasks, func(x models.Task) bool { return x.ID == id })
	if idx < 0 {
		return tasks, false
	}
	return slices.Delete(slices.Clone(tasks), idx, idx+1), true
}

func replaceEvent(events []models.Event, e models.Event) ([]models.Event, bool) {
	idx := slices.IndexFunc(events, func(x models.Event) bool { return x.ID == e.ID })
	if idx < 0 {
		return events, false
	}
	out := slices.Clone(events)
	out[idx] = e
	return out, true
}

func deleteEvent(events []models.Event, id int64) ([]models.Event, bool) {
	idx := slices.IndexFunc(events, func(x models.Event) bool { return x.ID == id })
	if idx < 0 {
		return events, false
	}
	return slices.Delete(slices.Clone(events), idx, idx+1), true
}

func replaceNote(notes []models.Note, n models.Note) ([]models.Note, bool) {
	idx := slices.IndexFunc(notes, func(x models.Note) bool { return x.ID == n.ID })
	if idx < 0 {
		return notes, false
	}
	out := slices.Clone(notes)
	out[idx] = n
	return out, true
}

func deleteNote(notes []models.Note, id int64) ([]models.Note, bool) {
	idx := slices.IndexFunc(notes, func(x models.Note) bool { return x.ID == id })
	if idx < 0 {
		return notes, false
	}
	return slices.Delete(slices.Clone(notes), idx, idx+1), true
}
