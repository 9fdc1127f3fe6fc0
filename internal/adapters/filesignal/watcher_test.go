package filesignal

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bft-labs/rimed/internal/bus"
	"github.com/bft-labs/rimed/pkg/log"
)

const testSignal = "SquirrelReloadNotification"

func startWatcher(t *testing.T, dir string, opts ...Option) (*atomic.Int32, chan struct{}) {
	t.Helper()
	b := bus.New()
	var count atomic.Int32
	fired := make(chan struct{}, 16)
	b.Subscribe(bus.Named(testSignal), func(bus.Event) {
		count.Add(1)
		fired <- struct{}{}
	})

	w := NewWatcher(dir, testSignal, b, log.NewNoopLogger(), opts...)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(w.Stop)
	return &count, fired
}

func waitFired(t *testing.T, fired <-chan struct{}) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("signal was not published")
	}
}

func TestPost_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "signals")
	if err := Post(dir, testSignal); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, testSignal))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := time.Parse(time.RFC3339Nano, string(data[:len(data)-1])); err != nil {
		t.Errorf("signal file does not hold a timestamp: %q", data)
	}
}

func TestWatcher_PublishesOnPost(t *testing.T) {
	dir := t.TempDir()
	_, fired := startWatcher(t, dir)

	if err := Post(dir, testSignal); err != nil {
		t.Fatal(err)
	}
	waitFired(t, fired)
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	count, fired := startWatcher(t, dir, WithDebounce(200*time.Millisecond))

	for i := 0; i < 3; i++ {
		if err := Post(dir, testSignal); err != nil {
			t.Fatal(err)
		}
	}
	waitFired(t, fired)
	time.Sleep(400 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("published %d times, want 1", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	count, _ := startWatcher(t, dir, WithDebounce(20*time.Millisecond))

	if err := Post(dir, "SomethingElse"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("published %d times for unrelated file", got)
	}
}

func TestWatcher_StopDropsPending(t *testing.T) {
	dir := t.TempDir()
	b := bus.New()
	var count atomic.Int32
	b.Subscribe(bus.Named(testSignal), func(bus.Event) { count.Add(1) })

	w := NewWatcher(dir, testSignal, b, log.NewNoopLogger(), WithDebounce(time.Second))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := Post(dir, testSignal); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	w.Stop()
	time.Sleep(1200 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("published %d times after Stop", got)
	}
}

func TestWithDebounce_IgnoresNonPositive(t *testing.T) {
	w := NewWatcher(t.TempDir(), testSignal, bus.New(), log.NewNoopLogger(), WithDebounce(0))
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
}
