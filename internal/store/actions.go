package store

import "daydash/internal/models"

// Action is a command applied to the application state through
// Dispatch. The set is closed: every variant is a plain data record
// consumed by the single apply function.
type Action interface {
	isAction()
}

type AddTask struct {
	Task models.Task
}

// UpdateTask replaces the full record matching Task.ID. Unknown ids are
// a no-op.
type UpdateTask struct {
	Task models.Task
}

type DeleteTask struct {
	ID int64
}

type AddEvent struct {
	Event models.Event
}

type UpdateEvent struct {
	Event models.Event
}

type DeleteEvent struct {
	ID int64
}

type AddNote struct {
	Note models.Note
}

type UpdateNote struct {
	Note models.Note
}

type DeleteNote struct {
	ID int64
}

// ToggleStarNote flips the starred flag on the matching note.
type ToggleStarNote struct {
	ID int64
}

func (AddTask) isAction()        {}
func (UpdateTask) isAction()     {}
func (DeleteTask) isAction()     {}
func (AddEvent) isAction()       {}
func (UpdateEvent) isAction()    {}
func (DeleteEvent) isAction()    {}
func (AddNote) isAction()        {}
func (UpdateNote) isAction()     {}
func (DeleteNote) isAction()     {}
func (ToggleStarNote) isAction() {}
