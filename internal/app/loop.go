package app

import (
	"context"
	"sync"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/pkg/log"
)

// job runs on the main loop and reports whether the loop should stop.
type job func(d Delegate) bool

// MainLoop is the single logical control thread. Triggers posted from any
// goroutine are handled one at a time, in order.
type MainLoop struct {
	queue  chan job
	done   chan struct{}
	once   sync.Once
	logger log.Logger

	mu       sync.Mutex
	delegate Delegate
}

// NewMainLoop creates a loop with room for buffer pending jobs.
func NewMainLoop(buffer int, logger log.Logger) *MainLoop {
	if buffer < 1 {
		buffer = 1
	}
	return &MainLoop{
		queue:  make(chan job, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post enqueues a trigger. Triggers posted after the loop stopped are dropped.
func (m *MainLoop) Post(trigger domain.Trigger) {
	m.enqueue(func(d Delegate) bool {
		d.Handle(trigger)
		return false
	}, trigger.String())
}

// Terminate runs the quit protocol on the loop: ask the delegate, and when
// it agrees deliver WillTerminate and stop the loop. It blocks until the
// protocol ran. If the loop already stopped, the protocol runs on the caller.
func (m *MainLoop) Terminate() TerminateReply {
	result := make(chan TerminateReply, 1)
	m.enqueue(func(d Delegate) bool {
		reply := quit(d)
		result <- reply
		return reply == TerminateNow
	}, "terminate")

	select {
	case reply := <-result:
		return reply
	case <-m.done:
	}

	select {
	case reply := <-result:
		return reply
	default:
	}

	m.mu.Lock()
	d := m.delegate
	m.mu.Unlock()
	if d == nil {
		return TerminateNow
	}
	m.logger.Info("main loop stopped, running quit protocol on caller")
	return quit(d)
}

func quit(d Delegate) TerminateReply {
	reply := d.ShouldTerminate()
	if reply == TerminateNow {
		d.Handle(domain.WillTerminate())
	}
	return reply
}

// Run dispatches jobs to the application's delegate until the context is
// cancelled or the quit protocol completes. Run must be called once.
func (m *MainLoop) Run(ctx context.Context, application *Application) error {
	defer m.once.Do(func() { close(m.done) })

	d := application.Delegate()
	m.mu.Lock()
	m.delegate = d
	m.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-m.queue:
			if j(d) {
				return nil
			}
		}
	}
}

// Done is closed when Run returns.
func (m *MainLoop) Done() <-chan struct{} {
	return m.done
}

func (m *MainLoop) enqueue(j job, what string) {
	select {
	case <-m.done:
		m.logger.Warn("main loop stopped, dropping job", log.String("job", what))
		return
	default:
	}

	select {
	case m.queue <- j:
	case <-m.done:
		m.logger.Warn("main loop stopped, dropping job", log.String("job", what))
	}
}
