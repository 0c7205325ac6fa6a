package store

import (
	"encoding/json"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"daydash/internal/models"
	"daydash/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	return New(backend, zap.NewNop().Sugar()), backend
}

func futureDate(t *testing.T) string {
	t.Helper()
	return "2999-01-01"
}

func TestLoadSeedsEmptyStorage(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()

	snap := s.Snapshot()
	if snap.IsLoading {
		t.Fatal("IsLoading still true after Load")
	}
	if got := len(snap.Tasks); got != 5 {
		t.Fatalf("len(Tasks)=%d, want 5", got)
	}
	if got := len(snap.Events); got != 4 {
		t.Fatalf("len(Events)=%d, want 4", got)
	}
	if got := len(snap.Notes); got != 3 {
		t.Fatalf("len(Notes)=%d, want 3", got)
	}
	if snap.Stats.TotalTasks != 5 || snap.Stats.CompletedTasks != 1 || snap.Stats.TotalEvents != 4 {
		t.Fatalf("stats = %+v, want totals 5/1/4", snap.Stats)
	}
	if got := calculateStats(snap.Tasks, snap.Events, Today()); got != snap.Stats {
		t.Fatalf("stats = %+v, recompute = %+v", snap.Stats, got)
	}
}

func TestEndToEndAddTask(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()

	before := s.Snapshot()
	s.Dispatch(AddTask{Task: models.Task{
		ID:       NextID(),
		Title:    "X",
		Status:   models.TaskPending,
		Priority: models.PriorityLow,
		DueDate:  futureDate(t),
	}})

	snap := s.Snapshot()
	if got := len(snap.Tasks); got != 6 {
		t.Fatalf("len(Tasks)=%d, want 6", got)
	}
	if snap.Stats.TotalTasks != 6 {
		t.Fatalf("TotalTasks=%d, want 6", snap.Stats.TotalTasks)
	}
	if snap.Stats.CompletedTasks != before.Stats.CompletedTasks {
		t.Fatalf("CompletedTasks changed: %d -> %d", before.Stats.CompletedTasks, snap.Stats.CompletedTasks)
	}
	if snap.Stats.UpcomingTasks != before.Stats.UpcomingTasks+1 {
		t.Fatalf("UpcomingTasks=%d, want %d", snap.Stats.UpcomingTasks, before.Stats.UpcomingTasks+1)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()
	before := s.Snapshot()

	const missing = int64(987654321)
	actions := []Action{
		UpdateTask{Task: models.Task{ID: missing, Title: "ghost"}},
		DeleteTask{ID: missing},
		UpdateEvent{Event: models.Event{ID: missing, Title: "ghost"}},
		DeleteEvent{ID: missing},
		UpdateNote{Note: models.Note{ID: missing, Title: "ghost"}},
		DeleteNote{ID: missing},
		ToggleStarNote{ID: missing},
	}

	for _, a := range actions {
		s.Dispatch(a)
		after := s.Snapshot()
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("%T with unknown id changed state:\nbefore %+v\nafter  %+v", a, before, after)
		}
	}
}

func TestStatsAlwaysMatchRecompute(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()

	task := models.Task{ID: NextID(), Title: "a", Status: models.TaskPending, Priority: models.PriorityHigh, DueDate: futureDate(t)}
	event := models.Event{ID: NextID(), Title: "b", Date: futureDate(t), Time: "10:00", Type: models.EventCall}

	steps := []Action{
		AddTask{Task: task},
		AddEvent{Event: event},
		UpdateTask{Task: models.Task{ID: task.ID, Title: "a2", Status: models.TaskCompleted, Priority: task.Priority, DueDate: task.DueDate}},
		UpdateEvent{Event: models.Event{ID: event.ID, Title: "b2", Date: event.Date, Time: event.Time, Type: models.EventPersonal}},
		DeleteEvent{ID: event.ID},
		DeleteTask{ID: task.ID},
	}

	for _, a := range steps {
		s.Dispatch(a)
		snap := s.Snapshot()
		want := calculateStats(snap.Tasks, snap.Events, Today())
		if snap.Stats != want {
			t.Fatalf("after %T: stats = %+v, recompute = %+v", a, snap.Stats, want)
		}
	}
}

func TestUpcomingBoundary(t *testing.T) {
	today := "2024-06-15"
	tasks := []models.Task{
		{ID: 1, Title: "due today", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: "2024-06-15"},
		{ID: 2, Title: "due yesterday", Status: models.TaskPending, Priority: models.PriorityHigh, DueDate: "2024-06-14"},
		{ID: 3, Title: "done tomorrow", Status: models.TaskCompleted, Priority: models.PriorityHigh, DueDate: "2024-06-16"},
	}

	stats := calculateStats(tasks, nil, today)
	if stats.UpcomingTasks != 1 {
		t.Fatalf("UpcomingTasks=%d, want 1 (only the pending task due today)", stats.UpcomingTasks)
	}
	if stats.TotalTasks != 3 || stats.CompletedTasks != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, backend := newTestStore(t)
	s.Load()

	// Replace the seeds with a collection covering every enum variant
	// plus an empty-content note.
	for _, task := range SeedTasks() {
		s.Dispatch(DeleteTask{ID: task.ID})
	}
	for _, event := range SeedEvents() {
		s.Dispatch(DeleteEvent{ID: event.ID})
	}
	for _, note := range SeedNotes() {
		s.Dispatch(DeleteNote{ID: note.ID})
	}

	s.Dispatch(AddTask{Task: models.Task{ID: 11, Title: "low", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: "2024-01-01"}})
	s.Dispatch(AddTask{Task: models.Task{ID: 12, Title: "med", Status: models.TaskCompleted, Priority: models.PriorityMedium, DueDate: "2024-01-02"}})
	s.Dispatch(AddTask{Task: models.Task{ID: 13, Title: "high", Status: models.TaskPending, Priority: models.PriorityHigh, DueDate: "2024-01-03"}})
	for i, typ := range models.AllEventTypes() {
		s.Dispatch(AddEvent{Event: models.Event{ID: int64(20 + i), Title: string(typ), Date: "2024-02-01", Time: "9:30 AM", Type: typ}})
	}
	s.Dispatch(AddNote{Note: models.Note{ID: 31, Title: "empty", Content: "", Date: "2024-03-01", Starred: true}})

	want := s.Snapshot()

	// A second store over the same backend must reconstruct the exact
	// collections, field for field, in order.
	s2 := New(backend, zap.NewNop().Sugar())
	s2.Load()
	got := s2.Snapshot()

	if !reflect.DeepEqual(want.Tasks, got.Tasks) {
		t.Fatalf("tasks round trip:\nwant %+v\ngot  %+v", want.Tasks, got.Tasks)
	}
	if !reflect.DeepEqual(want.Events, got.Events) {
		t.Fatalf("events round trip:\nwant %+v\ngot  %+v", want.Events, got.Events)
	}
	if !reflect.DeepEqual(want.Notes, got.Notes) {
		t.Fatalf("notes round trip:\nwant %+v\ngot  %+v", want.Notes, got.Notes)
	}
}

func TestEmptyCollectionRoundTrip(t *testing.T) {
	s, backend := newTestStore(t)
	s.Load()
	for _, task := range SeedTasks() {
		s.Dispatch(DeleteTask{ID: task.ID})
	}

	raw, ok, err := backend.Read(storage.KeyTasks)
	if err != nil || !ok {
		t.Fatalf("read tasks record: ok=%v err=%v", ok, err)
	}
	if string(raw) != "[]" {
		t.Fatalf("empty tasks record = %q, want []", raw)
	}

	s2 := New(backend, zap.NewNop().Sugar())
	s2.Load()
	if got := len(s2.Snapshot().Tasks); got != 0 {
		t.Fatalf("len(Tasks)=%d after reload, want 0", got)
	}
}

func TestCorruptRecordFallsBackPerKey(t *testing.T) {
	backend := storage.NewMemory()

	events := []models.Event{{ID: 7, Title: "kept", Date: "2024-05-05", Time: "1:00 PM", Type: models.EventMeeting}}
	notes := []models.Note{{ID: 8, Title: "kept", Content: "body", Date: "2024-05-06", Starred: false}}
	mustWriteJSON(t, backend, storage.KeyEvents, events)
	mustWriteJSON(t, backend, storage.KeyNotes, notes)
	if err := backend.Write(storage.KeyTasks, []byte("{not json")); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	s := New(backend, zap.NewNop().Sugar())
	s.Load()
	snap := s.Snapshot()

	if !reflect.DeepEqual(snap.Tasks, SeedTasks()) {
		t.Fatalf("corrupt tasks record did not fall back to seeds: %+v", snap.Tasks)
	}
	if !reflect.DeepEqual(snap.Events, events) {
		t.Fatalf("valid events record was not kept: %+v", snap.Events)
	}
	if !reflect.DeepEqual(snap.Notes, notes) {
		t.Fatalf("valid notes record was not kept: %+v", snap.Notes)
	}
}

func TestMissingRecordFallsBackPerKey(t *testing.T) {
	backend := storage.NewMemory()
	tasks := []models.Task{{ID: 9, Title: "kept", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: "2024-05-01"}}
	mustWriteJSON(t, backend, storage.KeyTasks, tasks)

	s := New(backend, zap.NewNop().Sugar())
	s.Load()
	snap := s.Snapshot()

	if !reflect.DeepEqual(snap.Tasks, tasks) {
		t.Fatalf("persisted tasks record was not kept: %+v", snap.Tasks)
	}
	if !reflect.DeepEqual(snap.Events, SeedEvents()) {
		t.Fatalf("missing events record did not fall back to seeds: %+v", snap.Events)
	}
	if !reflect.DeepEqual(snap.Notes, SeedNotes()) {
		t.Fatalf("missing notes record did not fall back to seeds: %+v", snap.Notes)
	}
}

func TestAddPreservesOrder(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()
	before := s.Snapshot().Tasks

	added := models.Task{ID: NextID(), Title: "last", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: futureDate(t)}
	s.Dispatch(AddTask{Task: added})

	after := s.Snapshot().Tasks
	if len(after) != len(before)+1 {
		t.Fatalf("len=%d, want %d", len(after), len(before)+1)
	}
	if !reflect.DeepEqual(after[:len(before)], before) {
		t.Fatalf("existing elements changed by append")
	}
	if after[len(after)-1] != added {
		t.Fatalf("appended task = %+v, want %+v", after[len(after)-1], added)
	}
}

func TestUpdateReplacesFullRecordInPlace(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()
	before := s.Snapshot().Tasks

	updated := before[2]
	updated.Title = "replaced"
	updated.Status = models.TaskPending
	s.Dispatch(UpdateTask{Task: updated})

	after := s.Snapshot().Tasks
	if len(after) != len(before) {
		t.Fatalf("update changed length: %d -> %d", len(before), len(after))
	}
	if after[2] != updated {
		t.Fatalf("element 2 = %+v, want %+v", after[2], updated)
	}
	for i := range before {
		if i != 2 && after[i] != before[i] {
			t.Fatalf("element %d changed by update of element 2", i)
		}
	}
}

func TestToggleStarNote(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()
	before := s.Snapshot().Notes

	s.Dispatch(ToggleStarNote{ID: before[1].ID})
	after := s.Snapshot().Notes
	if after[1].Starred == before[1].Starred {
		t.Fatal("starred flag did not flip")
	}
	if after[1].Title != before[1].Title || after[1].Content != before[1].Content || after[1].Date != before[1].Date {
		t.Fatalf("toggle touched other fields: %+v", after[1])
	}

	s.Dispatch(ToggleStarNote{ID: before[1].ID})
	if got := s.Snapshot().Notes[1]; got != before[1] {
		t.Fatalf("double toggle is not identity: %+v", got)
	}
}

func TestDispatchBeforeLoadIsDropped(t *testing.T) {
	s, _ := newTestStore(t)

	s.Dispatch(AddTask{Task: models.Task{ID: NextID(), Title: "early", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: futureDate(t)}})

	s.Load()
	if got := len(s.Snapshot().Tasks); got != 5 {
		t.Fatalf("len(Tasks)=%d after load, want the 5 seeds only", got)
	}
}

func TestLoadRunsOnce(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()

	s.Dispatch(DeleteTask{ID: SeedTasks()[0].ID})
	want := s.Snapshot()

	s.Load()
	if !reflect.DeepEqual(want, s.Snapshot()) {
		t.Fatal("second Load changed state")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()

	snap := s.Snapshot()
	snap.Tasks[0].Title = "mutated"

	if s.Snapshot().Tasks[0].Title == "mutated" {
		t.Fatal("mutating a snapshot leaked into the store")
	}
}

func TestNextIDMonotonic(t *testing.T) {
	prev := NextID()
	for i := 0; i < 1000; i++ {
		id := NextID()
		if id <= prev {
			t.Fatalf("NextID went backwards: %d then %d", prev, id)
		}
		prev = id
	}
}

func TestNextIDUniqueUnderConcurrency(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 200

	var mu sync.Mutex
	seen := make(map[int64]bool, goroutines*perGoroutine)
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]int64, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				ids = append(ids, NextID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				if seen[id] {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()
}

func mustWriteJSON(t *testing.T, backend storage.Backend, key string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", key, err)
	}
	if err := backend.Write(key, raw); err != nil {
		t.Fatalf("write %s: %v", key, err)
	}
}
