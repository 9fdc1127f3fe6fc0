// Package ossignal relays operating system power-off signals to the bus.
package ossignal

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/bft-labs/rimed/internal/bus"
	"github.com/bft-labs/rimed/pkg/log"
)

// Source publishes bus.KindPowerOff for each power-off signal received.
type Source struct {
	bus     *bus.Bus
	logger  log.Logger
	signals []os.Signal

	ch     chan os.Signal
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Source.
type Option func(*Source)

// WithSignals replaces the platform power-off signals.
func WithSignals(sigs ...os.Signal) Option {
	return func(s *Source) {
		s.signals = sigs
	}
}

// New creates a source for the platform's power-off signals.
func New(b *bus.Bus, logger log.Logger, opts ...Option) *Source {
	s := &Source{
		bus:     b,
		logger:  logger,
		signals: powerOffSignals,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start relays signals until ctx is cancelled or Stop is called.
// Platforms without a power-off signal start nothing.
func (s *Source) Start(ctx context.Context) {
	if len(s.signals) == 0 {
		s.logger.Debug("no power-off signal on this platform")
		return
	}

	s.ch = make(chan os.Signal, 1)
	signal.Notify(s.ch, s.signals...)

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-s.ch:
				n := s.bus.Publish(bus.KindPowerOff)
				s.logger.Info("power-off signal received",
					log.String("signal", sig.String()),
					log.Int("subscribers", n),
				)
			}
		}
	}()
}

// Stop unregisters the signals and waits for the relay to exit.
func (s *Source) Stop() {
	if s.cancel == nil {
		return
	}
	signal.Stop(s.ch)
	s.cancel()
	s.wg.Wait()
}
