package lockbench

import "sync"

// A Strategy selects which locker guards each role's critical section.
// Both lockers may be the same object. A strategy is bound to one Store at
// construction and shared by every worker for the whole run.
type Strategy interface {
	// Name identifies the strategy in configuration names and reports.
	Name() string
	// Reader returns the locker a reader acquires around the read body.
	Reader() sync.Locker
	// Writer returns the locker the writer acquires around the write body.
	Writer() sync.Locker
}

// Exclusive guards every role with the store's single sync.Mutex. All
// workers serialize regardless of role, so aggregate throughput is
// expected to flatten as workers are added.
func Exclusive(s *Store) Strategy { return &exclusive{mu: &s.mu} }

type exclusive struct{ mu *sync.Mutex }

func (e *exclusive) Name() string        { return "exclusive" }
func (e *exclusive) Reader() sync.Locker { return e.mu }
func (e *exclusive) Writer() sync.Locker { return e.mu }

// SharedReaderWriter guards readers with the shared side of the store's
// sync.RWMutex and the writer with its exclusive side. Multiple readers
// may hold the lock concurrently; the writer excludes everyone.
//
// Fairness between a waiting writer and arriving readers is whatever
// sync.RWMutex provides on the platform (a blocked writer keeps later
// readers from acquiring), not a guarantee of this package. Upgrading a
// held shared acquisition to exclusive is not supported and deadlocks;
// Case never issues one.
func SharedReaderWriter(s *Store) Strategy { return &sharedRW{rw: &s.rw} }

type sharedRW struct{ rw *sync.RWMutex }

func (s *sharedRW) Name() string        { return "rwshared" }
func (s *sharedRW) Reader() sync.Locker { return s.rw.RLocker() }
func (s *sharedRW) Writer() sync.Locker { return s.rw }
