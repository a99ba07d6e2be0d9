// Package notifier fans graph reloads out to open SSE streams.
package notifier

import "sync"

// Notifier counts graph generations and tells every subscriber about the
// newest one. A slow subscriber only ever sees the latest generation;
// intermediate ones are coalesced.
type Notifier struct {
	mu         sync.Mutex
	generation uint64
	listeners  map[chan uint64]struct{}
}

// New creates a Notifier at generation zero.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan uint64]struct{}),
	}
}

// Subscribe returns a channel receiving generation numbers. Callers must
// Unsubscribe when done.
func (n *Notifier) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes ch.
func (n *Notifier) Unsubscribe(ch chan uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[ch]; !ok {
		return
	}
	delete(n.listeners, ch)
	close(ch)
}

// Broadcast advances the generation and delivers it without blocking.
func (n *Notifier) Broadcast() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.generation++
	for ch := range n.listeners {
		// Replace an unread older generation.
		select {
		case <-ch:
		default:
		}
		ch <- n.generation
	}
	return n.generation
}

// Generation returns the number of broadcasts so far.
func (n *Notifier) Generation() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.generation
}

// Len returns the number of subscribers.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
