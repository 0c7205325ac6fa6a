// Package store owns the application state: three entity collections, a
// derived stats projection, and the load/persist lifecycle against a
// key/value backend. All mutation goes through Dispatch; callers only
// ever see copies via Snapshot.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"daydash/internal/models"
	"daydash/internal/storage"
)

// State is the root aggregate. Collection order is insertion order and
// is preserved across updates; only deletes remove elements.
type State struct {
	Tasks     []models.Task
	Events    []models.Event
	Notes     []models.Note
	Stats     models.Stats
	IsLoading bool
}

// Store is the single owner of State. Construct one per process and
// pass the handle to whatever needs it.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	log     *zap.SugaredLogger
	state   State
}

func New(backend storage.Backend, log *zap.SugaredLogger) *Store {
	return &Store{
		backend: backend,
		log:     log,
		state:   State{IsLoading: true},
	}
}

// Load reads the persisted records and commits the initial state. It
// runs at most once; later calls are no-ops. Each record falls back to
// its seed collection independently, whether it is missing or fails to
// decode.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsLoading {
		return
	}

	st := State{
		Tasks:  loadRecord(s.backend, s.log, storage.KeyTasks, SeedTasks),
		Events: loadRecord(s.backend, s.log, storage.KeyEvents, SeedEvents),
		Notes:  loadRecord(s.backend, s.log, storage.KeyNotes, SeedNotes),
	}
	st.Stats = calculateStats(st.Tasks, st.Events, Today())
	s.state = st

	// Write back immediately so a fresh install persists its seeds.
	s.persist()
}

// Dispatch applies one action. It never fails: unknown ids are silent
// no-ops and persistence errors are logged, not surfaced. Actions
// arriving before Load completes are dropped.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsLoading {
		s.log.Warnw("dropped action dispatched before load", "action", fmt.Sprintf("%T", action))
		return
	}

	next, applied := apply(s.state, action, Today())
	if !applied {
		s.log.Debugw("action matched no record", "action", fmt.Sprintf("%T", action))
		return
	}

	s.state = next
	s.persist()
}

// Snapshot returns a copy of the current state. The slices are fresh,
// so callers can hold or re-sort them freely.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Tasks = append([]models.Task(nil), st.Tasks...)
	st.Events = append([]models.Event(nil), st.Events...)
	st.Notes = append([]models.Note(nil), st.Notes...)
	return st
}

// persist writes all three collections to their records. Each write is
// independent and fire-and-forget. Callers must hold s.mu.
func (s *Store) persist() {
	writeRecord(s.backend, s.log, storage.KeyTasks, s.state.Tasks)
	writeRecord(s.backend, s.log, storage.KeyEvents, s.state.Events)
	writeRecord(s.backend, s.log, storage.KeyNotes, s.state.Notes)
}

func loadRecord[E any](backend storage.Backend, log *zap.SugaredLogger, key string, seed func() []E) []E {
	raw, ok, err := backend.Read(key)
	if err != nil {
		log.Warnw("record read failed, using seed data", "key", key, "error", err)
		return seed()
	}
	if !ok {
		return seed()
	}

	var out []E
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warnw("record decode failed, using seed data", "key", key, "error", err)
		return seed()
	}
	if out == nil {
		out = []E{}
	}
	return out
}

func writeRecord(backend storage.Backend, log *zap.SugaredLogger, key string, collection any) {
	raw, err := json.Marshal(collection)
	if err != nil {
		log.Warnw("record encode failed", "key", key, "error", err)
		return
	}
	if err := backend.Write(key, raw); err != nil {
		log.Warnw("record write failed", "key", key, "error", err)
	}
}
