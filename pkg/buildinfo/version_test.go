package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func reset(t *testing.T, v, c, d string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestFill(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2025-06-01T10:00:00Z"},
		},
	}

	t.Run("unset", func(t *testing.T) {
		reset(t, "dev", "none", "unknown")
		fill(info)
		if Version != "v0.3.1" || Commit != "0123456789abcdef" || Date != "2025-06-01T10:00:00Z" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("ldflags win", func(t *testing.T) {
		reset(t, "v1.0.0", "abc", "today")
		fill(info)
		if Version != "v1.0.0" || Commit != "abc" || Date != "today" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("devel", func(t *testing.T) {
		reset(t, "dev", "none", "unknown")
		fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		if Version != "dev" {
			t.Errorf("Version = %s", Version)
		}
	})
}

func TestTemplate(t *testing.T) {
	reset(t, "v1.2.3", "0123456789abcdef", "2025-01-01")

	tmpl := Template()
	for _, want := range []string{"{{.Name}}", "v1.2.3", "0123456", "2025-01-01"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
	if strings.Contains(tmpl, "0123456789") {
		t.Error("Template() should use the short commit")
	}
	if !strings.Contains(String(), "commit: 0123456789abcdef") {
		t.Errorf("String() = %q", String())
	}
}
