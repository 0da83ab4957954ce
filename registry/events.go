package registry

import "sync"

// Event describes one successful append. Its fields match the stored record
// exactly.
type Event struct {
	Owner   string
	Pointer string
	Name    string
}

// Listener receives append events. Listeners are best-effort: they run
// synchronously after the record is durably stored, a panicking listener is
// dropped for that event, and no listener outcome can fail the append.
type Listener func(Event)

// notifier fans one event out to all registered listeners.
// Events for the same owner are delivered in append order because publish
// runs on the appending goroutine; no cross-owner ordering is guaranteed.
type notifier struct {
	mu        sync.RWMutex
	listeners []Listener
}

func (n *notifier) subscribe(l Listener) {
	if l == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

func (n *notifier) publish(ev Event) {
	n.mu.RLock()
	listeners := n.listeners
	n.mu.RUnlock()

	for _, l := range listeners {
		deliver(l, ev)
	}
}

// deliver invokes one listener, swallowing a panic so a broken listener
// cannot surface as an append failure.
func deliver(l Listener, ev Event) {
	defer func() { _ = recover() }()
	l(ev)
}
