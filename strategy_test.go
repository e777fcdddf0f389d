package lockbench

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStrategyNames(t *testing.T) {
	var s Store
	if got := Exclusive(&s).Name(); got != "exclusive" {
		t.Fatalf("Exclusive name = %q", got)
	}
	if got := SharedReaderWriter(&s).Name(); got != "rwshared" {
		t.Fatalf("SharedReaderWriter name = %q", got)
	}
}

func TestExclusiveRolesShareOneLocker(t *testing.T) {
	var s Store
	st := Exclusive(&s)
	if st.Reader() != st.Writer() {
		t.Fatal("exclusive reader and writer must resolve to the same locker")
	}
}

func TestExclusiveSerializesAllRoles(t *testing.T) {
	var s Store
	s.Setup()
	st := Exclusive(&s)

	var inside int32
	const loops = 2000
	workers := runtime.GOMAXPROCS(0) + 2

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		locker := st.Reader()
		if RoleFor(w) == Writer {
			locker = st.Writer()
		}
		go func(l sync.Locker) {
			defer wg.Done()
			for range loops {
				l.Lock()
				if n := atomic.AddInt32(&inside, 1); n != 1 {
					t.Errorf("%d workers inside an exclusive section", n)
					atomic.AddInt32(&inside, -1)
					l.Unlock()
					return
				}
				atomic.AddInt32(&inside, -1)
				l.Unlock()
			}
		}(locker)
	}
	wg.Wait()
}

func TestSharedReaderWriterInvariants(t *testing.T) {
	var s Store
	s.Setup()
	st := SharedReaderWriter(&s)

	var readers int32
	var writers int32
	var peak int32

	const loops = 1000
	readerN := runtime.GOMAXPROCS(0)
	writerN := 2

	var wg sync.WaitGroup
	wg.Add(readerN + writerN)

	for range readerN {
		go func() {
			defer wg.Done()
			l := st.Reader()
			for range loops {
				l.Lock()
				n := atomic.AddInt32(&readers, 1)
				if atomic.LoadInt32(&writers) != 0 {
					t.Errorf("reader observed active writer")
					l.Unlock()
					return
				}
				if n <= 0 {
					t.Errorf("invalid reader count")
					l.Unlock()
					return
				}
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				atomic.AddInt32(&readers, -1)
				l.Unlock()
			}
		}()
	}

	for range writerN {
		go func() {
			defer wg.Done()
			l := st.Writer()
			for range loops {
				l.Lock()
				if atomic.AddInt32(&writers, 1) != 1 {
					t.Errorf("multiple writers active")
					l.Unlock()
					return
				}
				if atomic.LoadInt32(&readers) != 0 {
					t.Errorf("writer observed active readers")
					l.Unlock()
					return
				}
				atomic.AddInt32(&writers, -1)
				l.Unlock()
			}
		}()
	}

	wg.Wait()
	t.Logf("peak concurrent readers: %d", atomic.LoadInt32(&peak))
}

// Shared acquisitions are admitted while another reader holds the lock.
func TestSharedReadersOverlap(t *testing.T) {
	var s Store
	st := SharedReaderWriter(&s)
	r := st.Reader()
	r.Lock()

	done := make(chan struct{})
	go func() {
		l := st.Reader()
		l.Lock()
		l.Unlock()
		close(done)
	}()

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("second reader blocked behind a held shared acquisition")
	}
	r.Unlock()
}

// Under the exclusive strategy even two readers serialize.
func TestExclusiveReadersSerialize(t *testing.T) {
	var s Store
	st := Exclusive(&s)
	r := st.Reader()
	r.Lock()

	acquired := make(chan struct{})
	go func() {
		l := st.Reader()
		l.Lock()
		close(acquired)
		l.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second reader acquired the exclusive lock while held")
	case <-time.After(50 * time.Millisecond):
		// OK
	}
	r.Unlock()

	select {
	case <-acquired:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("second reader never acquired after release")
	}
}
