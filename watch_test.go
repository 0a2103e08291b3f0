package rigging

import (
	"testing"
	"time"
)

func TestWatcher_DeliversSavesToCoordinator(t *testing.T) {
	cache, dir := newTestCache(t)
	writeDefWithSprite(t, dir, "Target", 0, 0, 40, 40)
	cache.Index().Rescan()
	cache.Get("Target") // cached, so the save is actionable

	co := NewCoordinator(cache)
	var invalidated []string
	co.OnInvalidated = func(name string) { invalidated = append(invalidated, name) }

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// External write to the watched directory.
	writeDefWithSprite(t, dir, "Target", 0, 0, 80, 80)

	deadline := time.Now().Add(5 * time.Second)
	delivered := 0
	for delivered == 0 && time.Now().Before(deadline) {
		delivered = w.Drain(co)
		if delivered == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}
	if delivered == 0 {
		t.Fatal("no save event arrived before the deadline")
	}
	if len(invalidated) == 0 || invalidated[0] != "Target" {
		t.Errorf("invalidated = %v, want [Target ...]", invalidated)
	}
}

func TestWatcher_MissingDirectory_StillConstructs(t *testing.T) {
	w, err := NewWatcher("/does/not/exist")
	if err != nil {
		t.Fatalf("NewWatcher over a missing directory failed: %v", err)
	}
	w.Close()
}

func TestWatcher_Drain_EmptyNonBlocking(t *testing.T) {
	cache, dir := newTestCache(t)
	co := NewCoordinator(cache)

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if n := w.Drain(co); n != 0 {
		t.Errorf("Drain on an idle watcher delivered %d events", n)
	}
}
