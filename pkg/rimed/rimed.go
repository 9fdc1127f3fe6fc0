package rimed

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/rimed/internal/adapters/deployer"
	"github.com/bft-labs/rimed/internal/adapters/filesignal"
	"github.com/bft-labs/rimed/internal/adapters/fs"
	"github.com/bft-labs/rimed/internal/adapters/ossignal"
	"github.com/bft-labs/rimed/internal/adapters/rimeconfig"
	"github.com/bft-labs/rimed/internal/app"
	"github.com/bft-labs/rimed/internal/bus"
	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/panel"
	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// State is the engine lifecycle state.
type State = domain.EngineState

// Lifecycle states.
const (
	StateUninitialized = domain.StateUninitialized
	StateConfigured    = domain.StateConfigured
	StateRunning       = domain.StateRunning
	StateShuttingDown  = domain.StateShuttingDown
	StateTerminated    = domain.StateTerminated
)

// AppearanceMode selects the light or dark theme.
type AppearanceMode = domain.AppearanceMode

// Appearance modes.
const (
	Light = domain.Light
	Dark  = domain.Dark
)

// Theme is the projected front end style for one appearance mode.
type Theme = panel.Theme

// Status is the snapshot written to status.json.
type Status = domain.Status

var (
	// ErrInvalidConfig is returned by New for unusable configuration.
	ErrInvalidConfig = domain.ErrInvalidConfig
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("rimed: already started")
	// ErrNotRunning is returned by Stop on a daemon that is not running.
	ErrNotRunning = errors.New("rimed: not running")
)

const loopBuffer = 16

// Daemon owns one engine and drives its lifecycle from a single control loop.
type Daemon struct {
	cfg    Config
	logger log.Logger

	events   *bus.Bus
	loop     *app.MainLoop
	ctrl     *app.Controller
	recorder *app.StatusRecorder
	watcher  *filesignal.Watcher
	power    *ossignal.Source

	mu      sync.Mutex
	panel   *panel.Panel
	started bool
	stopped bool
	cancel  context.CancelFunc
	runErr  chan error
}

// New creates a daemon. Call Start to launch the engine.
func New(cfg Config, opts ...Option) (*Daemon, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = deployer.New(o.logger)
	}

	d := &Daemon{
		cfg:    cfg,
		logger: o.logger,
		events: bus.New(),
		loop:   app.NewMainLoop(loopBuffer, o.logger),
		runErr: make(chan error, 1),
	}
	d.recorder = app.NewStatusRecorder(fs.NewStatusFileRepository(cfg.StateDir), o.logger)

	ac := app.DefaultConfig()
	ac.SharedDataDir = cfg.SharedDataDir
	ac.UserDataDir = cfg.UserDataDir
	ac.LogDir = cfg.LogDir
	ac.DistributionVersion = cfg.DistributionVersion

	router := app.NewRouter(d.events, d.loop, cfg.ReloadSignal, o.logger)
	d.ctrl = app.NewController(ac, o.engine,
		app.WithLogger(o.logger),
		app.WithPanelFactory(d.newPanel),
		app.WithConfigStoreFactory(rimeconfig.Factory(ac.UserDataDir, ac.ConfigFileName, o.logger)),
		app.WithSubscriptions(router),
		app.WithEventHandler(&eventFanout{recorder: d.recorder, handler: o.eventHandler}),
	)

	d.watcher = filesignal.NewWatcher(cfg.SignalDir, cfg.ReloadSignal, d.events, o.logger,
		filesignal.WithDebounce(cfg.Debounce))

	var powerOpts []ossignal.Option
	if o.powerSignals != nil {
		powerOpts = append(powerOpts, ossignal.WithSignals(o.powerSignals...))
	}
	d.power = ossignal.New(d.events, o.logger, powerOpts...)

	return d, nil
}

// Start launches the engine and begins serving signals. It returns once the
// launch and the first deploy are queued.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.watcher.Start(runCtx); err != nil {
		cancel()
		return err
	}
	d.power.Start(runCtx)
	d.cancel = cancel
	d.started = true

	application := app.NewApplication(d.ctrl)
	go func() {
		d.runErr <- d.loop.Run(runCtx, application)
	}()

	d.loop.Post(domain.WillFinishLaunching())
	d.loop.Post(domain.Maintenance(d.cfg.FullCheck))
	return nil
}

// Reload queues a full redeploy, as if the reload signal was posted.
func (d *Daemon) Reload() {
	d.loop.Post(domain.ReloadRequested())
}

// Stop runs the quit protocol and waits for the control loop to exit.
func (d *Daemon) Stop() error {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return ErrNotRunning
	}
	d.stopped = true
	d.mu.Unlock()

	reply := d.loop.Terminate()
	err := <-d.runErr

	d.watcher.Stop()
	d.power.Stop()
	d.cancel()

	d.logger.Info("stopped", log.String("reply", reply.String()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Done is closed when the control loop exits.
func (d *Daemon) Done() <-chan struct{} {
	return d.loop.Done()
}

// State returns the current lifecycle state.
func (d *Daemon) State() State {
	return d.ctrl.State()
}

// Degraded reports whether the last deploy left the engine degraded.
func (d *Daemon) Degraded() bool {
	return d.ctrl.Degraded()
}

// Status returns the last recorded status.
func (d *Daemon) Status() Status {
	return d.recorder.Status()
}

// Themes returns the themes loaded by the last successful deploy.
func (d *Daemon) Themes() map[AppearanceMode]Theme {
	d.mu.Lock()
	p := d.panel
	d.mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Themes()
}

func (d *Daemon) newPanel() ports.Panel {
	p := panel.New(d.logger)
	d.mu.Lock()
	d.panel = p
	d.mu.Unlock()
	return p
}
