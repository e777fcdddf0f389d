package lockbench

import "sync"

// A Case binds a store, a lock strategy, and workload bodies into the unit
// a measurement driver runs. Construction resolves each role's locker
// once; RunOnce then performs exactly one acquire, work, release cycle.
//
// Properties:
//   - One acquisition per cycle, released on every exit path including
//     panics.
//   - Workload bodies receive only the store, never a locker, so a body
//     cannot re-enter the lock or upgrade a shared acquisition.
//   - A case with no write body is read-only: every ordinal reads,
//     ordinal 0 included.
type Case struct {
	_        noCopy
	store    *Store
	strategy Strategy
	read     Workload
	write    Workload
	reader   sync.Locker
	writer   sync.Locker
}

// NewCase binds one measurable configuration. write may be nil for
// read-only cases. A nil store, strategy, or read body is a programming
// error and panics.
func NewCase(store *Store, strategy Strategy, read, write Workload) *Case {
	if store == nil || strategy == nil || read == nil {
		panic("lockbench: NewCase needs a store, a strategy, and a read body")
	}
	return &Case{
		store:    store,
		strategy: strategy,
		read:     read,
		write:    write,
		reader:   strategy.Reader(),
		writer:   strategy.Writer(),
	}
}

// Store returns the store the case runs against.
func (c *Case) Store() *Store { return c.store }

// Strategy returns the bound lock strategy.
func (c *Case) Strategy() Strategy { return c.strategy }

// Mixed reports whether the case has a write body.
func (c *Case) Mixed() bool { return c.write != nil }

// Setup populates the store. Call it once before the timed region;
// redundant calls are no-ops.
func (c *Case) Setup() { c.store.Setup() }

// RunOnce executes one lock cycle for the worker with the given ordinal
// and returns the workload's value. Drivers call it repeatedly inside
// their timed loops. Negative ordinals panic.
func (c *Case) RunOnce(ordinal int) float64 {
	if ordinal < 0 {
		panic("lockbench: negative worker ordinal")
	}
	if c.write != nil && RoleFor(ordinal) == Writer {
		c.writer.Lock()
		defer c.writer.Unlock()
		return c.write(c.store)
	}
	c.reader.Lock()
	defer c.reader.Unlock()
	return c.read(c.store)
}
