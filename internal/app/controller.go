package app

import (
	"sync/atomic"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// TerminateReply answers an application termination request.
type TerminateReply int

const (
	TerminateCancel TerminateReply = iota
	TerminateNow
)

// String returns a human-readable representation of the reply.
func (r TerminateReply) String() string {
	if r == TerminateNow {
		return "terminate-now"
	}
	return "terminate-cancel"
}

// Subscriptions is the set of external event subscriptions owned by the controller.
type Subscriptions interface {
	Install()
	Remove()
}

// EventHandler receives controller events.
type EventHandler interface {
	EventEmitter
	OnDeployFinished(degraded bool)
}

// Option configures optional collaborators of a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithPanelFactory sets how the presentation surface is created at launch.
func WithPanelFactory(f ports.PanelFactory) Option {
	return func(c *Controller) {
		c.newPanel = f
	}
}

// WithConfigStoreFactory sets how a base configuration store is created per reload.
func WithConfigStoreFactory(f ports.ConfigStoreFactory) Option {
	return func(c *Controller) {
		c.newStore = f
	}
}

// WithSubscriptions sets the event subscriptions installed at launch.
func WithSubscriptions(s Subscriptions) Option {
	return func(c *Controller) {
		c.subs = s
	}
}

// WithEventHandler sets a handler for state changes and deploy results.
func WithEventHandler(h EventHandler) Option {
	return func(c *Controller) {
		c.events = h
	}
}

// Controller drives the engine through its lifecycle.
//
// Trigger handlers are not re-entrant. They must be called from a single
// goroutine, normally the MainLoop. The notification handler is the only
// method the engine may call from elsewhere.
type Controller struct {
	cfg       Config
	engine    ports.EngineBinding
	lifecycle *Lifecycle
	logger    log.Logger
	events    EventHandler
	newPanel  ports.PanelFactory
	newStore  ports.ConfigStoreFactory
	subs      Subscriptions

	panel    ports.Panel
	config   ports.ConfigStore
	degraded atomic.Bool
}

// NewController creates a controller in StateUninitialized that owns engine.
func NewController(cfg Config, engine ports.EngineBinding, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		engine: engine,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var emitter EventEmitter
	if c.events != nil {
		emitter = c.events
	}
	c.lifecycle = NewLifecycle(c.logger, emitter)
	return c
}

// State returns the current engine state. Safe to call from any goroutine.
func (c *Controller) State() domain.EngineState {
	return c.lifecycle.State()
}

// Degraded reports whether the last deploy left the engine without a fresh configuration.
func (c *Controller) Degraded() bool {
	return c.degraded.Load()
}

// Handle dispatches a lifecycle trigger.
func (c *Controller) Handle(trigger domain.Trigger) {
	switch trigger.Kind {
	case domain.TriggerWillFinishLaunching:
		c.WillFinishLaunching()
	case domain.TriggerWillTerminate:
		c.WillTerminate()
	case domain.TriggerPowerOff:
		c.PowerOff()
	case domain.TriggerReloadRequested:
		c.logger.Info("reloading engine on demand")
		c.Deploy(true)
	case domain.TriggerMaintenanceRequested:
		c.Deploy(trigger.FullCheck)
	default:
		c.logger.Warn("ignoring unknown trigger", log.String("trigger", trigger.String()))
	}
}

// WillFinishLaunching creates the panel, installs subscriptions and sets up
// the engine. A second call is a logged no-op.
func (c *Controller) WillFinishLaunching() {
	if !c.lifecycle.Is(domain.StateUninitialized) {
		c.logger.Warn("launch ignored", log.String("state", c.State().String()))
		return
	}

	if c.newPanel != nil && c.panel == nil {
		c.panel = c.newPanel()
	}
	if c.subs != nil {
		c.subs.Install()
	}

	if err := c.setupEngine(); err != nil {
		c.logger.Error("engine setup failed", log.Err(err))
		return
	}
	if err := c.lifecycle.TransitionTo(domain.StateConfigured, "engine set up"); err != nil {
		c.logger.Error("launch transition failed", log.Err(err))
	}
}

// Deploy runs the full maintenance cycle: shut down, initialize, run
// maintenance and, only when maintenance succeeds, deploy the config file and
// reload settings into the panel. It is safe to re-run.
func (c *Controller) Deploy(fullCheck bool) {
	if !c.lifecycle.Is(domain.StateConfigured, domain.StateRunning) {
		c.logger.Warn("deploy rejected", log.String("state", c.State().String()))
		return
	}

	c.logger.Info("start maintenance", log.Bool("full_check", fullCheck))
	if c.lifecycle.Is(domain.StateRunning) {
		if err := c.lifecycle.TransitionTo(domain.StateConfigured, "reload"); err != nil {
			c.logger.Error("reload transition failed", log.Err(err))
			return
		}
	}
	c.shutdownEngine()

	if !c.startEngine(fullCheck) {
		c.finishDeploy(true)
		return
	}
	c.finishDeploy(!c.loadSettings())
}

// PowerOff finalizes the engine before the session ends.
func (c *Controller) PowerOff() {
	if !c.lifecycle.Is(domain.StateConfigured, domain.StateRunning) {
		c.logger.Info("power off ignored", log.String("state", c.State().String()))
		return
	}

	c.logger.Info("finalizing before logging out")
	if err := c.lifecycle.TransitionTo(domain.StateShuttingDown, "power off"); err != nil {
		c.logger.Error("power off transition failed", log.Err(err))
		return
	}
	c.shutdownEngine()
	_ = c.lifecycle.TransitionTo(domain.StateTerminated, "power off")
}

// WillTerminate removes subscriptions and hides the panel.
func (c *Controller) WillTerminate() {
	if c.subs != nil {
		c.subs.Remove()
	}
	if c.panel != nil {
		c.panel.Hide()
	}
	_ = c.lifecycle.TransitionTo(domain.StateTerminated, "application will terminate")
}

// ShouldTerminate cleans up all engine sessions and always authorizes termination.
func (c *Controller) ShouldTerminate() TerminateReply {
	c.logger.Info("quitting")
	c.engine.CleanupAllSessions()
	_ = c.lifecycle.TransitionTo(domain.StateTerminated, "application should terminate")
	return TerminateNow
}

// startEngine initializes the engine and runs maintenance.
// It returns true only when maintenance succeeded.
func (c *Controller) startEngine(fullCheck bool) bool {
	c.logger.Info("initializing engine")
	if err := c.engine.Initialize(); err != nil {
		c.logger.Error("engine initialize failed", log.Err(err))
		return false
	}
	if err := c.lifecycle.TransitionTo(domain.StateRunning, "engine initialized"); err != nil {
		c.logger.Error("start transition failed", log.Err(err))
		return false
	}

	if !c.engine.StartMaintenance(fullCheck) {
		c.logger.Warn("maintenance failed, keeping previous configuration")
		return false
	}

	if !c.engine.DeployConfigFile(c.cfg.ConfigFileName, c.cfg.ConfigVersionKey) {
		c.logger.Warn("config file deploy failed",
			log.String("file", c.cfg.ConfigFileName),
			log.String("version_key", c.cfg.ConfigVersionKey),
		)
	}
	return true
}

// loadSettings replaces the base configuration and loads it into the panel
// for every appearance mode. It reports whether the panel received a fresh
// configuration.
func (c *Controller) loadSettings() bool {
	if c.newStore == nil {
		c.logger.Error("no configuration store")
		return false
	}

	store := c.newStore()
	c.config = store
	if !store.OpenBase() {
		c.logger.Warn("base configuration unavailable")
		return false
	}

	if c.panel == nil {
		c.logger.Warn("settings not loaded", log.Err(domain.ErrNoPanel))
		return false
	}
	for _, mode := range domain.AppearanceModes {
		if err := store.LoadInto(c.panel, mode); err != nil {
			c.logger.Error("load settings failed", log.String("mode", mode.String()), log.Err(err))
			return false
		}
	}

	c.logger.Info("settings loaded")
	return true
}

// shutdownEngine closes the configuration and finalizes the engine.
func (c *Controller) shutdownEngine() {
	if c.config != nil {
		c.config.Close()
		c.config = nil
	}
	c.engine.Finalize()
}

func (c *Controller) finishDeploy(degraded bool) {
	c.degraded.Store(degraded)
	if c.events != nil {
		c.events.OnDeployFinished(degraded)
	}
}

// onNotification is the engine's notification sink. It may run on an engine
// goroutine concurrently with a reload and must not touch controller state.
func (c *Controller) onNotification(session domain.SessionID, messageType, messageValue string) {
	c.logger.Debug("engine notification",
		log.Uint64("session", uint64(session)),
		log.String("type", messageType),
		log.String("value", messageValue),
	)
}
