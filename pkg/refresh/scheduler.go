package refresh

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrInvalidInterval is returned for non-positive intervals.
var ErrInvalidInterval = errors.New("invalid refresh interval")

// Task is a running refresh task.
type Task interface {
	// Stop cancels the task and waits for an in-flight call to finish.
	// Stop is idempotent.
	Stop()
}

// Scheduler starts refresh tasks.
type Scheduler interface {
	// Every calls fn every interval until the returned Task is stopped.
	Every(interval time.Duration, fn func()) (Task, error)
}

// Ticker is the default Scheduler, one goroutine and time.Ticker per task.
type Ticker struct {
	active  atomic.Int64
	started atomic.Int64
}

// NewTicker creates a Ticker scheduler.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Every starts a task. The first call happens one interval from now.
func (s *Ticker) Every(interval time.Duration, fn func()) (Task, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	t := &tickerTask{
		owner:  s,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.active.Add(1)
	s.started.Add(1)

	go t.run(time.NewTicker(interval), fn)
	return t, nil
}

// Active returns the number of tasks not yet stopped.
func (s *Ticker) Active() int {
	return int(s.active.Load())
}

// Started returns the number of tasks ever started.
func (s *Ticker) Started() int {
	return int(s.started.Load())
}

type tickerTask struct {
	owner    *Ticker
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func (t *tickerTask) run(ticker *time.Ticker, fn func()) {
	defer close(t.done)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			// Stop may have raced with the tick.
			select {
			case <-t.stopCh:
				return
			default:
			}
			fn()
		}
	}
}

func (t *tickerTask) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
		<-t.done
		t.owner.active.Add(-1)
	})
}
