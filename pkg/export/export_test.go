package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/errors"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func runDefault(t *testing.T) (*Report, string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	var out bytes.Buffer
	rep, err := Exporter{Path: path, Now: func() time.Time { return fixedTime }, Out: &out}.
		Run(context.Background(), catalog.DefaultDocument())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return rep, path, out.String()
}

func TestRunReport(t *testing.T) {
	rep, path, _ := runDefault(t)

	if rep.Path != path || rep.ChecklistItems != 10 || !rep.GeneratedAt.Equal(fixedTime) {
		t.Errorf("report = %+v", rep)
	}
	want := []string{"brand_identity", "website_headers_banners", "functional_icons", "section_graphics"}
	if diff := cmp.Diff(want, rep.Sections); diff != "" {
		t.Errorf("sections (-want +got):\n%s", diff)
	}

	records := 0
	for _, r := range catalog.DefaultDocument().Records() {
		if r.Section != catalog.SectionDesignSpecifications && r.Section != catalog.SectionUsageGuidelines {
			records++
		}
	}
	if rep.TotalAssets != records {
		t.Errorf("TotalAssets = %d, want %d", rep.TotalAssets, records)
	}
	info, err := os.Stat(path)
	if err != nil || int(info.Size()) != rep.Bytes {
		t.Errorf("file size = %v (%v), report says %d", info, err, rep.Bytes)
	}
}

func TestRunConsoleText(t *testing.T) {
	rep, path, out := runDefault(t)

	wantStart := "=== MISJustice Alliance Media Assets Catalog ===\n" +
		"Catalog saved to: " + path + "\n" +
		"Generated on: 2025-03-14 09:26:53\n" +
		"\n=== Generated Media Assets Summary ===\n" +
		"\nBrand Identity:\n" +
		"  • MISJusticeAlliance-Logo.jpg - Main logo featuring anonymous figure in suit holding scales of justice shield\n"
	if !strings.HasPrefix(out, wantStart) {
		t.Errorf("output starts with:\n%s", out[:min(len(out), len(wantStart)+40)])
	}

	for _, title := range []string{"\nWebsite Headers Banners:\n", "\nFunctional Icons:\n", "\nSection Graphics:\n"} {
		if !strings.Contains(out, title) {
			t.Errorf("missing section title %q", title)
		}
	}
	for _, excluded := range []string{"Design Specifications", "Usage Guidelines"} {
		if strings.Contains(out, excluded) {
			t.Errorf("excluded section %q printed", excluded)
		}
	}

	if got := strings.Count(out, "\n  • "); got != rep.TotalAssets {
		t.Errorf("asset lines = %d, want %d", got, rep.TotalAssets)
	}

	wantEnd := "\n=== Developer Implementation Checklist ===\n" +
		strings.Join(Checklist, "\n") + "\n" +
		"\n=== File Export Summary ===\n" +
		"Media assets catalog: " + path + "\n" +
		"All generated images are ready for web implementation\n" +
		"Recommendation: Convert to WebP format for production use\n"
	if !strings.HasSuffix(out, wantEnd) {
		t.Errorf("output does not end with checklist and footer:\n%s", out)
	}
	if !strings.Contains(out, "\nTotal Media Assets Generated: ") {
		t.Error("missing total line")
	}
}

func TestChecklist(t *testing.T) {
	if len(Checklist) != 10 {
		t.Fatalf("checklist has %d items", len(Checklist))
	}
	for i, item := range Checklist {
		if !strings.HasPrefix(item, "□ ") {
			t.Errorf("item %d = %q", i, item)
		}
	}
	if Checklist[9] != "□ Create fallback images for failed loads" {
		t.Errorf("last item = %q", Checklist[9])
	}
}

func TestJSONTopLevelKeys(t *testing.T) {
	_, path, _ := runDefault(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		t.Fatalf("first token = %v, %v", tok, err)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			t.Fatal(err)
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(catalog.DefaultDocument().Keys(), keys); diff != "" {
		t.Errorf("top-level keys (-want +got):\n%s", diff)
	}

	back, err := catalog.ParseDocument(data, catalog.EncodingJSON)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(back.Records()) != len(catalog.DefaultDocument().Records()) {
		t.Error("record count changed after round trip")
	}
}

func TestJSONFormatting(t *testing.T) {
	data, err := MarshalJSON(catalog.DefaultDocument())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "{\n  \"brand_identity\": {\n    \"primary_logo\": {\n      \"file\": ") {
		t.Errorf("unexpected indentation:\n%s", s[:min(len(s), 120)])
	}
	if strings.Contains(s, `&`) || strings.Contains(s, `<`) {
		t.Error("HTML characters escaped")
	}
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	e := Exporter{Path: path}

	if _, err := e.Run(context.Background(), catalog.DefaultDocument()); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(path)
	if _, err := e.Run(context.Background(), catalog.DefaultDocument()); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(path)
	if !bytes.Equal(first, second) {
		t.Error("re-running produced different bytes")
	}
}

func TestRunExcludeOverride(t *testing.T) {
	var out bytes.Buffer
	rep, err := Exporter{Path: filepath.Join(t.TempDir(), "c.json"), Exclude: []string{}, Out: &out}.
		Run(context.Background(), catalog.DefaultDocument())
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Sections) != 6 || !strings.Contains(out.String(), "\nUsage Guidelines:\n") {
		t.Errorf("sections = %v", rep.Sections)
	}
}

func TestRunErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Exporter{Path: filepath.Join(file, "sub", "c.json")}.Run(context.Background(), catalog.DefaultDocument())
	if !errors.Is(err, errors.ErrCodeWriteFailed) {
		t.Errorf("err = %v, want WRITE_FAILED", err)
	}

	_, err = Exporter{Path: filepath.Join(t.TempDir(), "c.json")}.Run(context.Background(), &catalog.Document{})
	if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("err = %v, want INVALID_CATALOG", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Exporter{}).Run(ctx, catalog.DefaultDocument()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestSectionTitle(t *testing.T) {
	tests := map[string]string{
		"brand_identity":          "Brand Identity",
		"website_headers_banners": "Website Headers Banners",
		"usage_guidelines":        "Usage Guidelines",
		"single":                  "Single",
	}
	for in, want := range tests {
		if got := SectionTitle(in); got != want {
			t.Errorf("SectionTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
