package watch

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// mockWatcher feeds hand-made events to a DebouncedWatcher.
type mockWatcher struct {
	mu       sync.Mutex
	events   chan Event
	errors   chan error
	watching map[string]bool
	closed   bool
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{
		events:   make(chan Event, 100),
		errors:   make(chan error, 100),
		watching: make(map[string]bool),
	}
}

func (m *mockWatcher) Watch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watching[path] = true
	return nil
}

func (m *mockWatcher) WatchRecursive(path string) error {
	return m.Watch(path)
}

func (m *mockWatcher) Unwatch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.watching[path] {
		return ErrNotWatching
	}
	delete(m.watching, path)
	return nil
}

func (m *mockWatcher) IsWatching(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watching[path]
}

func (m *mockWatcher) Events() <-chan Event { return m.events }
func (m *mockWatcher) Errors() <-chan error { return m.errors }

func (m *mockWatcher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
		close(m.errors)
	}
	return nil
}

func receive(t *testing.T, ch <-chan Event, within time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(within):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestDebouncedWatcher_DefaultDelay(t *testing.T) {
	dw := NewDebouncedWatcher(newMockWatcher(), 0)
	defer dw.Close()

	if dw.delay != DefaultDebounce {
		t.Errorf("delay = %v, want %v", dw.delay, DefaultDebounce)
	}
}

func TestDebouncedWatcher_Coalesces(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 50*time.Millisecond)
	defer dw.Close()

	now := time.Now()
	mock.events <- Event{Path: "/a.txt", Op: OpCreate, Timestamp: now}
	mock.events <- Event{Path: "/a.txt", Op: OpWrite, Timestamp: now.Add(time.Millisecond)}
	mock.events <- Event{Path: "/a.txt", Op: OpWrite, Timestamp: now.Add(2 * time.Millisecond)}

	ev := receive(t, dw.Events(), time.Second)
	if ev.Path != "/a.txt" {
		t.Errorf("Path = %q, want /a.txt", ev.Path)
	}
	if ev.Op != OpCreate|OpWrite {
		t.Errorf("Op = %v, want CREATE|WRITE", ev.Op)
	}
	if !ev.Timestamp.Equal(now.Add(2 * time.Millisecond)) {
		t.Errorf("Timestamp should be the latest observed")
	}

	select {
	case extra := <-dw.Events():
		t.Errorf("unexpected extra event %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncedWatcher_SeparatePaths(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 20*time.Millisecond)
	defer dw.Close()

	mock.events <- Event{Path: "/a", Op: OpWrite}
	mock.events <- Event{Path: "/b", Op: OpWrite}

	seen := map[string]bool{}
	seen[receive(t, dw.Events(), time.Second).Path] = true
	seen[receive(t, dw.Events(), time.Second).Path] = true
	if !seen["/a"] || !seen["/b"] {
		t.Errorf("saw %v, want both paths", seen)
	}
}

func TestDebouncedWatcher_Flush(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, time.Hour)
	defer dw.Close()

	mock.events <- Event{Path: "/slow", Op: OpWrite}

	deadline := time.Now().Add(time.Second)
	for dw.PendingCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("event never became pending")
		}
		time.Sleep(time.Millisecond)
	}

	dw.Flush()
	if ev := receive(t, dw.Events(), time.Second); ev.Path != "/slow" {
		t.Errorf("Path = %q, want /slow", ev.Path)
	}
	if dw.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d after Flush", dw.PendingCount())
	}
}

func TestDebouncedWatcher_ForwardsErrors(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 10*time.Millisecond)
	defer dw.Close()

	want := errors.New("boom")
	mock.errors <- want

	select {
	case err := <-dw.Errors():
		if err != want {
			t.Errorf("got %v, want %v", err, want)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestDebouncedWatcher_DelegatesAndCloses(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 10*time.Millisecond)

	if err := dw.Watch("/dir"); err != nil {
		t.Fatal(err)
	}
	if !dw.IsWatching("/dir") {
		t.Error("watch should reach the inner watcher")
	}
	if err := dw.Unwatch("/other"); !errors.Is(err, ErrNotWatching) {
		t.Errorf("Unwatch error = %v, want ErrNotWatching", err)
	}

	mock.events <- Event{Path: "/dropped", Op: OpWrite}
	if err := dw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := dw.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}

	for range dw.Events() {
	}
	if !mock.closed {
		t.Error("Close should close the inner watcher")
	}
}
