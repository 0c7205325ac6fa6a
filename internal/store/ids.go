package store

import (
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NextID returns a unique int64 id for a new entity. It is seeded from
// the wall clock in milliseconds so ids keep their rough chronological
// ordering across restarts, and strictly monotonic within a process so
// two entities created in the same clock tick never collide.
func NextID() int64 {
	for {
		last := lastID.Load()
		next := time.Now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if lastID.CompareAndSwap(last, next) {
			return next
		}
	}
}
