package db

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectionLocks_Serialises(t *testing.T) {
	locks := NewCollectionLocks()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer locks.Acquire("users")()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestCollectionLocks_IndependentCollections(t *testing.T) {
	locks := NewCollectionLocks()
	release := locks.Acquire("users")
	defer release()

	done := make(chan struct{})
	go func() {
		locks.Acquire("products")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("products lock blocked behind users lock")
	}
}

func TestCollectionLocks_Nil(t *testing.T) {
	var locks *CollectionLocks
	release := locks.Acquire("users")
	release()
	locks.Acquire("users")()
}
