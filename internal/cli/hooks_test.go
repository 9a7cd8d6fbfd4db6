package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/observability"
	"github.com/matzehuels/assetgrid/pkg/pipeline"
)

func TestEnableTracing(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	c.EnableTracing()

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	if _, err := runner.Execute(context.Background(), catalog.DefaultGrid(), pipeline.Options{Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"layout", "render done", "cache miss"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output lacks %q:\n%s", want, out)
		}
	}
}

func TestEnableTracingHTTP(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	c.EnableTracing()

	observability.HTTP().OnRequest(context.Background(), "GET", "/grid.svg", 200, time.Millisecond)
	out := buf.String()
	for _, want := range []string{"http", "/grid.svg", "200"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output lacks %q:\n%s", want, out)
		}
	}
}
