package media

import "sync"

// notifier runs callbacks one at a time, in the order they were posted,
// on its own goroutine.
type notifier struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
	done  chan struct{}
	once  sync.Once
}

func newNotifier() *notifier {
	n := &notifier{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	go n.run()
	return n
}

func (n *notifier) post(f func()) {
	if f == nil {
		return
	}

	n.mu.Lock()
	n.queue = append(n.queue, f)
	n.mu.Unlock()

	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// stop runs what is already queued, then ends the goroutine.
func (n *notifier) stop() {
	n.once.Do(func() { close(n.done) })
}

func (n *notifier) run() {
	for {
		select {
		case <-n.wake:
			n.flush()

		case <-n.done:
			n.flush()
			return
		}
	}
}

func (n *notifier) flush() {
	for {
		n.mu.Lock()
		if len(n.queue) == 0 {
			n.mu.Unlock()
			return
		}

		f := n.queue[0]
		n.queue = n.queue[1:]
		n.mu.Unlock()

		f()
	}
}
