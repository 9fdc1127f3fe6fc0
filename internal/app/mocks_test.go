package app

import (
	"fmt"
	"sync"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/ports"
)

// journal records calls made by the controller across all collaborators.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(format string, args ...interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, fmt.Sprintf(format, args...))
}

func (j *journal) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string{}, j.calls...)
}

func (j *journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = nil
}

// mockEngine implements ports.EngineBinding.
type mockEngine struct {
	j           *journal
	setupErr    error
	initErr     error
	maintenance bool
	deployOK    bool
	handler     ports.NotificationHandler
	traits      domain.Traits
}

func newMockEngine(j *journal) *mockEngine {
	return &mockEngine{j: j, maintenance: true, deployOK: true}
}

func (m *mockEngine) SetNotificationHandler(h ports.NotificationHandler) {
	m.j.add("engine.set_notification_handler")
	m.handler = h
}

func (m *mockEngine) Setup(traits domain.Traits) error {
	m.j.add("engine.setup")
	m.traits = traits
	return m.setupErr
}

func (m *mockEngine) Initialize() error {
	m.j.add("engine.initialize")
	return m.initErr
}

func (m *mockEngine) StartMaintenance(fullCheck bool) bool {
	m.j.add("engine.start_maintenance(%v)=%v", fullCheck, m.maintenance)
	return m.maintenance
}

func (m *mockEngine) DeployConfigFile(name, versionKey string) bool {
	m.j.add("engine.deploy_config_file(%s,%s)", name, versionKey)
	return m.deployOK
}

func (m *mockEngine) Finalize() {
	m.j.add("engine.finalize")
}

func (m *mockEngine) CleanupAllSessions() {
	m.j.add("engine.cleanup_all_sessions")
}

// mockConfig implements ports.Configuration.
type mockConfig struct {
	id int
}

func (mockConfig) GetString(string) (string, bool)              { return "", false }
func (mockConfig) GetBool(string) (bool, bool)                  { return false, false }
func (mockConfig) GetInt(string) (int, bool)                    { return 0, false }
func (mockConfig) GetDouble(string) (float64, bool)             { return 0, false }
func (mockConfig) GetMap(string) (map[string]interface{}, bool) { return nil, false }

// mockStore implements ports.ConfigStore.
type mockStore struct {
	j      *journal
	config *mockConfig
	openOK bool
	open   bool
}

func (s *mockStore) OpenBase() bool {
	s.j.add("config.open_base=%v", s.openOK)
	s.open = s.openOK
	return s.openOK
}

func (s *mockStore) Close() {
	s.j.add("config.close")
	s.open = false
}

func (s *mockStore) LoadInto(panel ports.Panel, mode domain.AppearanceMode) error {
	if !s.open {
		return domain.ErrConfigNotOpen
	}
	panel.Load(s.config, mode)
	return nil
}

// storeFactory hands out numbered stores.
type storeFactory struct {
	j      *journal
	openOK bool
	stores []*mockStore
}

func (f *storeFactory) New() ports.ConfigStore {
	s := &mockStore{j: f.j, openOK: f.openOK, config: &mockConfig{id: len(f.stores) + 1}}
	f.stores = append(f.stores, s)
	return s
}

// mockPanel implements ports.Panel.
type mockPanel struct {
	j      *journal
	loads  []panelLoad
	hidden bool
}

type panelLoad struct {
	config ports.Configuration
	mode   domain.AppearanceMode
}

func (p *mockPanel) Load(config ports.Configuration, mode domain.AppearanceMode) {
	id := 0
	if c, ok := config.(*mockConfig); ok {
		id = c.id
	}
	p.j.add("panel.load(%d,%s)", id, mode)
	p.loads = append(p.loads, panelLoad{config: config, mode: mode})
}

func (p *mockPanel) Hide() {
	p.j.add("panel.hide")
	p.hidden = true
}

// mockSubs implements Subscriptions.
type mockSubs struct {
	j         *journal
	installed int
	removed   int
}

func (s *mockSubs) Install() {
	s.j.add("subs.install")
	s.installed++
}

func (s *mockSubs) Remove() {
	s.j.add("subs.remove")
	s.removed++
}

// mockEvents implements EventHandler.
type mockEvents struct {
	mockEmitter
	mu      sync.Mutex
	deploys []bool
}

func (m *mockEvents) OnDeployFinished(degraded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deploys = append(m.deploys, degraded)
}

// recordingSink implements ports.TriggerSink.
type recordingSink struct {
	mu       sync.Mutex
	triggers []domain.Trigger
}

func (s *recordingSink) Post(t domain.Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers = append(s.triggers, t)
}

func (s *recordingSink) Triggers() []domain.Trigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Trigger{}, s.triggers...)
}
