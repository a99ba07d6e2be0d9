package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeUnsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())

	_, open := <-ch
	assert.False(t, open, "unsubscribe closes the channel")

	// A second unsubscribe is a no-op.
	n.Unsubscribe(ch)
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()

	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	assert.Equal(t, uint64(1), n.Broadcast())

	for _, ch := range []chan uint64{ch1, ch2} {
		select {
		case gen := <-ch:
			assert.Equal(t, uint64(1), gen)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("subscriber did not receive broadcast")
		}
	}
}

func TestNotifier_CoalescesToLatest(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	done := make(chan struct{})
	go func() {
		n.Broadcast()
		n.Broadcast()
		n.Broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Broadcast blocked on an unread subscriber")
	}

	assert.Equal(t, uint64(3), <-ch)
	assert.Equal(t, uint64(3), n.Generation())
	select {
	case gen := <-ch:
		t.Fatalf("unexpected extra generation %d", gen)
	default:
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast()
			n.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, n.Len())
	assert.Equal(t, uint64(10), n.Generation())
}
