package watch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quiet = log.NewWithOptions(io.Discard, log.Options{})

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	other := filepath.Join(dir, "other.yaml")
	writeFile(t, path, "a")
	writeFile(t, other, "a")

	var calls atomic.Int32
	got := make(chan []string, 4)
	w, err := New([]string{path}, 50*time.Millisecond, func(_ context.Context, changed []string) error {
		calls.Add(1)
		got <- changed
		return nil
	}, quiet)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, other, "b")
	for i := range 5 {
		writeFile(t, path, string(rune('b'+i)))
	}

	select {
	case changed := <-got:
		if len(changed) != 1 || filepath.Base(changed[0]) != "catalog.yaml" {
			t.Errorf("changed = %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}

	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("callback ran %d times, want 1", n)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestWatcherSurvivesCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeFile(t, path, "{}")

	var logs bytes.Buffer
	got := make(chan struct{}, 4)
	w, err := New([]string{path}, 20*time.Millisecond, func(context.Context, []string) error {
		got <- struct{}{}
		return errors.New("bad catalog")
	}, log.New(&logs))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := range 2 {
		writeFile(t, path, "{\"n\": "+string(rune('0'+i))+"}")
		select {
		case <-got:
		case <-time.After(5 * time.Second):
			t.Fatalf("callback %d not called", i)
		}
	}

	cancel()
	<-done

	if out := logs.String(); !strings.Contains(out, "rebuild failed") || !strings.Contains(out, "bad catalog") {
		t.Errorf("callback error not logged:\n%s", out)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil, 0, nil, quiet); err == nil {
		t.Error("New(nil) succeeded")
	}
	missing := filepath.Join(t.TempDir(), "missing", "catalog.yaml")
	if _, err := New([]string{missing}, 0, nil, quiet); err == nil {
		t.Error("New with missing directory succeeded")
	}
}
