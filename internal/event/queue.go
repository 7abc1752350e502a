package event

import (
	"errors"
	"sync"
)

// ErrDisconnected is returned when the queue has been closed.
var ErrDisconnected = errors.New("event channel disconnected")

// Sink accepts events from a producer.
type Sink interface {
	Send(Event) bool
}

// Queue is an unbounded multi-producer, single-consumer FIFO. Send never
// waits on the consumer; events from one producer are received in the order
// they were sent.
type Queue struct {
	in   chan Event
	out  chan Event
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue and starts its pump goroutine.
func NewQueue() *Queue {
	q := &Queue{
		in:   make(chan Event),
		out:  make(chan Event),
		done: make(chan struct{}),
	}
	go q.pump()
	return q
}

func (q *Queue) pump() {
	defer close(q.out)

	var pending []Event
	for {
		var (
			out  chan Event
			next Event
		)
		if len(pending) > 0 {
			out = q.out
			next = pending[0]
		}

		select {
		case <-q.done:
			return
		case ev := <-q.in:
			pending = append(pending, ev)
		case out <- next:
			pending[0] = nil
			pending = pending[1:]
		}
	}
}

// Send enqueues ev. It reports false once the queue is closed.
func (q *Queue) Send(ev Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.in <- ev:
		return true
	case <-q.done:
		return false
	}
}

// Recv blocks until the next event is available.
func (q *Queue) Recv() (Event, error) {
	ev, ok := <-q.out
	if !ok {
		return nil, ErrDisconnected
	}
	return ev, nil
}

// Close stops the queue. Pending events are dropped and later sends are
// ignored.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.done)
	})
}
