package lock

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()

	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("1/cat.png")
			defer m.Unlock("1/cat.png")

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("expected at most 1 concurrent holder, saw %d", maxActive)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	m := NewKeyedMutex()
	m.Lock("1/a.png")
	defer m.Unlock("1/a.png")

	done := make(chan struct{})
	go func() {
		m.Lock("1/b.png")
		m.Unlock("1/b.png")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("independent key blocked")
	}
}

func TestLockPairNoDeadlockOnOppositeOrder(t *testing.T) {
	m := NewKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := m.LockPair("1/old.png", "1/new.png")
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := m.LockPair("1/new.png", "1/old.png")
			unlock()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("LockPair deadlocked")
	}
}

func TestLockPairEqualKeys(t *testing.T) {
	m := NewKeyedMutex()
	unlock := m.LockPair("1/same.png", "1/same.png")
	unlock()

	// Key must be free again.
	m.Lock("1/same.png")
	m.Unlock("1/same.png")
}
