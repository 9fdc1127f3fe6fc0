package rimed_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/rimed/internal/adapters/deployer"
	"github.com/bft-labs/rimed/internal/adapters/filesignal"
	"github.com/bft-labs/rimed/pkg/log"
	"github.com/bft-labs/rimed/pkg/rimed"
)

const squirrelYAML = `config_version: "1.0"
style:
  color_scheme: aqua
  color_scheme_dark: dusk
preset_color_schemes:
  aqua:
    name: Aqua
    back_color: 0xFFFFFF
  dusk:
    name: Dusk
    back_color: 0x202020
`

type recordingHandler struct {
	rimed.BaseEventHandler

	mu      sync.Mutex
	deploys []bool
	states  []rimed.State
}

func (h *recordingHandler) OnStateChange(e rimed.StateChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, e.Current)
}

func (h *recordingHandler) OnDeployFinished(e rimed.DeployEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deploys = append(h.deploys, e.Degraded)
}

func (h *recordingHandler) deployCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.deploys)
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func testConfig(t *testing.T) rimed.Config {
	t.Helper()
	root := t.TempDir()
	cfg := rimed.Config{
		SharedDataDir: filepath.Join(root, "shared"),
		UserDataDir:   filepath.Join(root, "user"),
		LogDir:        filepath.Join(root, "log"),
	}
	if err := os.MkdirAll(cfg.SharedDataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.SharedDataDir, "squirrel.yaml"), []byte(squirrelYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := rimed.New(rimed.Config{UserDataDir: "/tmp/x"})
	if !errors.Is(err, rimed.ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := rimed.Config{SharedDataDir: "/s", UserDataDir: "/u"}
	cfg.SetDefaults()

	if cfg.StateDir != "/u" {
		t.Errorf("StateDir = %q, want /u", cfg.StateDir)
	}
	if want := filepath.Join("/u", "signals"); cfg.SignalDir != want {
		t.Errorf("SignalDir = %q, want %q", cfg.SignalDir, want)
	}
	if cfg.ReloadSignal != rimed.DefaultReloadSignal {
		t.Errorf("ReloadSignal = %q", cfg.ReloadSignal)
	}
	if cfg.DistributionVersion != "Unknown" {
		t.Errorf("DistributionVersion = %q, want Unknown", cfg.DistributionVersion)
	}
}

func TestDaemon_Lifecycle(t *testing.T) {
	cfg := testConfig(t)
	h := &recordingHandler{}
	d, err := rimed.New(cfg, rimed.WithEventHandler(h))
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Stop(); !errors.Is(err, rimed.ErrNotRunning) {
		t.Errorf("Stop() before Start error = %v, want ErrNotRunning", err)
	}

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := d.Start(context.Background()); !errors.Is(err, rimed.ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
	}

	eventually(t, "first deploy", func() bool { return h.deployCount() == 1 })
	if d.State() != rimed.StateRunning {
		t.Errorf("State() = %v, want Running", d.State())
	}
	if d.Degraded() {
		t.Error("Degraded() = true after a clean deploy")
	}

	themes := d.Themes()
	if got := themes[rimed.Light].SchemeName; got != "Aqua" {
		t.Errorf("light scheme = %q, want Aqua", got)
	}
	if got := themes[rimed.Dark].SchemeName; got != "Dusk" {
		t.Errorf("dark scheme = %q, want Dusk", got)
	}

	// Reload through the cross-process signal.
	if err := filesignal.Post(filepath.Join(cfg.UserDataDir, "signals"), rimed.DefaultReloadSignal); err != nil {
		t.Fatal(err)
	}
	eventually(t, "signalled reload", func() bool { return h.deployCount() >= 2 })

	// Reload through the API.
	n := h.deployCount()
	d.Reload()
	eventually(t, "api reload", func() bool { return h.deployCount() > n })

	if err := d.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if d.State() != rimed.StateTerminated {
		t.Errorf("State() after Stop = %v, want Terminated", d.State())
	}
	if err := d.Stop(); !errors.Is(err, rimed.ErrNotRunning) {
		t.Errorf("second Stop() error = %v, want ErrNotRunning", err)
	}
	select {
	case <-d.Done():
	default:
		t.Error("Done() not closed after Stop")
	}

	data, err := os.ReadFile(filepath.Join(cfg.UserDataDir, "status.json"))
	if err != nil {
		t.Fatalf("status.json: %v", err)
	}
	var status rimed.Status
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatal(err)
	}
	if status.State != rimed.StateTerminated.String() {
		t.Errorf("status.json state = %q, want %q", status.State, rimed.StateTerminated.String())
	}
	if d.Status().State != status.State {
		t.Errorf("Status() = %+v, file = %+v", d.Status(), status)
	}
}

func TestDaemon_MissingConfigIsDegraded(t *testing.T) {
	cfg := testConfig(t)
	if err := os.Remove(filepath.Join(cfg.SharedDataDir, "squirrel.yaml")); err != nil {
		t.Fatal(err)
	}
	h := &recordingHandler{}
	d, err := rimed.New(cfg, rimed.WithEventHandler(h))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer d.Stop()

	eventually(t, "first deploy", func() bool { return h.deployCount() == 1 })
	if d.State() != rimed.StateRunning {
		t.Errorf("State() = %v, want Running", d.State())
	}
	if !d.Degraded() {
		t.Error("Degraded() = false without squirrel.yaml")
	}
}

func TestDaemon_ContextCancel(t *testing.T) {
	eng := deployer.New(log.NewNoopLogger())
	h := &recordingHandler{}
	d, err := rimed.New(testConfig(t), rimed.WithEngine(eng), rimed.WithEventHandler(h))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}
	eventually(t, "first deploy", func() bool { return h.deployCount() == 1 })
	if _, err := eng.CreateSession(); err != nil {
		t.Fatal(err)
	}

	cancel()
	select {
	case <-d.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit on cancel")
	}
	if err := d.Stop(); err != nil {
		t.Errorf("Stop() after cancel error = %v", err)
	}

	if n := eng.SessionCount(); n != 0 {
		t.Errorf("SessionCount() after Stop = %d, want 0", n)
	}
	if d.State() != rimed.StateTerminated {
		t.Errorf("State() after Stop = %v, want Terminated", d.State())
	}
	if n := rimed.SubscriptionCount(d); n != 0 {
		t.Errorf("subscriptions after Stop = %d, want 0", n)
	}
}
