package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/config"
	"github.com/matzehuels/assetgrid/pkg/errors"
)

// run executes the CLI with args in a fresh working directory and returns
// everything written to standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func assertFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s: %v", path, err)
	}
	if len(data) == 0 {
		t.Fatalf("%s is empty", path)
	}
	return data
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"png,svg,html", []string{"png", "svg", "html"}},
		{" png , json ,", []string{"png", "json"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestRenderDefaults(t *testing.T) {
	dir := inTempDir(t)

	out, err := run(t, "render")
	if err != nil {
		t.Fatal(err)
	}
	png := assertFile(t, filepath.Join(dir, "asset_grid.png"))
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("asset_grid.png is not a PNG")
	}
	svg := assertFile(t, filepath.Join(dir, "asset_grid.svg"))
	if !bytes.Contains(svg, []byte(`data-y-range="0.5 5"`)) {
		t.Error("asset_grid.svg lacks the y range")
	}
	if !strings.Contains(out, "4 categories") || !strings.Contains(out, "11 assets") {
		t.Errorf("render output = %q", out)
	}
}

func TestRenderIdempotent(t *testing.T) {
	dir := inTempDir(t)

	if _, err := run(t, "render", "--no-cache", "-f", "svg"); err != nil {
		t.Fatal(err)
	}
	first := assertFile(t, filepath.Join(dir, "asset_grid.svg"))
	if _, err := run(t, "render", "--no-cache", "-f", "svg"); err != nil {
		t.Fatal(err)
	}
	if second := assertFile(t, filepath.Join(dir, "asset_grid.svg")); !bytes.Equal(first, second) {
		t.Error("re-rendering changed the SVG")
	}
}

func TestRenderFormatsAndOutput(t *testing.T) {
	dir := inTempDir(t)

	if _, err := run(t, "render", "-f", "html,json,graph", "-o", "out", "--basename", "grid"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"grid.html", "grid_layout.json", "grid_graph.svg"} {
		assertFile(t, filepath.Join(dir, "out", name))
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	inTempDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"render", "-f", "pdf"}},
		{"engine", []string{"render", "--png-engine", "cairo"}},
		{"basename", []string{"render", "--basename", "../x"}},
		{"grid file", []string{"render", "--grid", "missing.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRenderRejectsScale(t *testing.T) {
	inTempDir(t)

	for _, scale := range []string{"1e9", "-2"} {
		t.Run(scale, func(t *testing.T) {
			_, err := run(t, "render", "-f", "png", "--scale="+scale)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestRenderCustomGrid(t *testing.T) {
	dir := inTempDir(t)
	gridFile := filepath.Join(dir, "grid.yaml")
	yaml := `categories:
  - name: Logos
    assets:
      - {file: a.png, description: A, usage: Header}
      - {file: b.png, description: B, usage: Footer}
`
	if err := os.WriteFile(gridFile, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "render", "--grid", gridFile, "-f", "svg")
	if err != nil {
		t.Fatal(err)
	}
	svg := assertFile(t, filepath.Join(dir, "asset_grid.svg"))
	if !bytes.Contains(svg, []byte("b.png")) {
		t.Error("custom asset missing from SVG")
	}
	if !strings.Contains(out, "1 categories") {
		t.Errorf("output = %q", out)
	}
}

func TestExportDefaults(t *testing.T) {
	dir := inTempDir(t)

	out, err := run(t, "export")
	if err != nil {
		t.Fatal(err)
	}
	data := assertFile(t, filepath.Join(dir, "misjustice_media_assets_catalog.json"))

	var doc catalog.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(catalog.DefaultDocument().Keys(), doc.Keys()); diff != "" {
		t.Errorf("top-level keys (-want +got):\n%s", diff)
	}

	want := len(catalog.DefaultDocument().Records())
	if got := strings.Count(out, "  • "); got != want {
		t.Errorf("printed %d asset lines, want %d", got, want)
	}
	for _, s := range []string{
		"=== MISJustice Alliance Media Assets Catalog ===",
		"Catalog saved to: misjustice_media_assets_catalog.json",
		fmt.Sprintf("Total Media Assets Generated: %d", want),
		"=== Developer Implementation Checklist ===",
		"=== File Export Summary ===",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q", s)
		}
	}
}

func TestExportExclude(t *testing.T) {
	inTempDir(t)

	out, err := run(t, "export", "--exclude", "brand_identity,design_specifications,usage_guidelines")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "\nBrand Identity:") {
		t.Error("excluded section printed")
	}
	if !strings.Contains(out, "\nFunctional Icons:") {
		t.Error("included section missing")
	}
}

func TestBuild(t *testing.T) {
	dir := inTempDir(t)

	out, err := run(t, "build", "-o", "site")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"asset_grid.png", "asset_grid.svg", "misjustice_media_assets_catalog.json"} {
		assertFile(t, filepath.Join(dir, "site", name))
	}
	if !strings.Contains(out, "Build complete") || !strings.Contains(out, "Total Media Assets Generated") {
		t.Errorf("build output = %q", out)
	}
}

func TestWatchNeedsFiles(t *testing.T) {
	inTempDir(t)

	_, err := run(t, "watch")
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("watch without files: %v", err)
	}
}

func TestWatchRebuildReturnsFailure(t *testing.T) {
	dir := inTempDir(t)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	old := stdout
	stdout = io.Discard
	t.Cleanup(func() { stdout = old })

	gridFile := filepath.Join(dir, "grid.yaml")
	if err := os.WriteFile(gridFile, []byte("categories:\n  - name: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	var opts buildOpts
	opts.render.grid = gridFile
	opts.render.formats = "svg"

	err := c.rebuildFunc(opts)(context.Background(), []string{gridFile})
	if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("rebuild error = %v, want INVALID_CATALOG", err)
	}

	valid := "categories:\n  - name: Logos\n    assets:\n      - {file: a.png, description: A, usage: Header}\n"
	if err := os.WriteFile(gridFile, []byte(valid), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.rebuildFunc(opts)(context.Background(), []string{gridFile}); err != nil {
		t.Errorf("rebuild after fix: %v", err)
	}
}

func TestPublishDryRun(t *testing.T) {
	inTempDir(t)

	out, err := run(t, "publish", "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("Would publish %d records", len(catalog.DefaultDocument().Records()))
	if !strings.Contains(out, want) {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := inTempDir(t)

	if _, err := run(t, "config", "init"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(filepath.Join(dir, config.DefaultPath))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("written config differs from defaults (-want +got):\n%s", diff)
	}

	if _, err := run(t, "config", "init"); err == nil {
		t.Error("second init without --force succeeded")
	}
	if _, err := run(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := run(t, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	shown, err := config.Parse(out, "show")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, shown); diff != "" {
		t.Errorf("config show (-want +got):\n%s", diff)
	}
}

func TestConfigFileApplies(t *testing.T) {
	dir := inTempDir(t)
	toml := `[output]
dir = "public"
grid_basename = "chart"
formats = ["svg"]
`
	if err := os.WriteFile(filepath.Join(dir, config.DefaultPath), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "render"); err != nil {
		t.Fatal(err)
	}
	assertFile(t, filepath.Join(dir, "public", "chart.svg"))
	if _, err := os.Stat(filepath.Join(dir, "public", "chart.png")); err == nil {
		t.Error("png written although formats = [\"svg\"]")
	}
}

func TestBadConfigFails(t *testing.T) {
	inTempDir(t)
	if _, err := run(t, "--config", "missing.toml", "render"); errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("missing config: %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	inTempDir(t)

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
	if out, err := run(t, "cache", "clear"); err != nil || !strings.Contains(out, "Cache is empty") {
		t.Errorf("cache clear = %q, %v", out, err)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil || !strings.Contains(out, appName) {
			t.Errorf("completion %s: err %v, %d bytes", shell, err, len(out))
		}
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell accepted")
	}
}

func TestGridRecords(t *testing.T) {
	recs := gridRecords(catalog.DefaultGrid())
	if len(recs) != catalog.CountAssets(catalog.DefaultGrid()) {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].Section != "Brand Identity" || recs[0].File != "Logo.jpg" {
		t.Errorf("first record = %+v", recs[0])
	}
}

func TestReloadCatalogs(t *testing.T) {
	dir := t.TempDir()
	gridFile := filepath.Join(dir, "grid.json")
	docFile := filepath.Join(dir, "media.json")
	if err := os.WriteFile(gridFile, []byte(`{"categories":[{"name":"X","assets":[{"file":"x.png"}]}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	cats, doc, err := c.reloadCatalogs([]string{gridFile}, gridFile, docFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 1 || cats[0].Name != "X" {
		t.Errorf("cats = %+v", cats)
	}
	if doc != nil {
		t.Error("unchanged document was reloaded")
	}
}
