package storage

// Record keys the store persists against.
const (
	KeyTasks  = "tasks"
	KeyEvents = "events"
	KeyNotes  = "notes"
)

// Backend is a key/value record store. Read reports ok=false for a key
// that has never been written; a decode error on the value is the
// caller's concern, not the backend's.
type Backend interface {
	Read(key string) (value []byte, ok bool, err error)
	Write(key string, value []byte) error
	Clear() error
	Close() error
}
