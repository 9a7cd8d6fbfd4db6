// Package export writes the media asset catalog as JSON and prints the
// developer summary that accompanies it.
//
// [Exporter.Run] performs the whole export: it writes the catalog file,
// prints the header, the per-section asset summary, the implementation
// checklist and the footer, and returns a [Report] for callers and tests.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/errors"
	"github.com/matzehuels/assetgrid/pkg/observability"
)

// DefaultFilename is the catalog file written when no path is given.
const DefaultFilename = "misjustice_media_assets_catalog.json"

// TimeLayout formats the "Generated on" timestamp.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultExcluded lists the sections left out of the summary.
var DefaultExcluded = catalog.ReferenceSections

// Checklist is the fixed developer implementation checklist.
var Checklist = []string{
	"□ Convert PNG assets to WebP format for modern browsers",
	"□ Create multiple resolution versions for responsive design",
	"□ Generate favicon.ico from PNG favicon",
	"□ Optimize all images for web (compression, file size)",
	"□ Create SVG versions of simple icons for scalability",
	"□ Implement lazy loading for large images",
	"□ Add proper alt text for all images",
	"□ Test image loading on various devices and connections",
	"□ Set up CDN delivery for optimal performance",
	"□ Create fallback images for failed loads",
}

// Report describes a finished export.
type Report struct {
	Path           string    `json:"path"`
	Bytes          int       `json:"bytes"`
	TotalAssets    int       `json:"total_assets"`
	Sections       []string  `json:"sections"`
	ChecklistItems int       `json:"checklist_items"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Exporter writes a catalog and prints its summary.
type Exporter struct {
	// Path is the output file. Empty means DefaultFilename.
	Path string

	// Exclude lists sections left out of the summary. Nil means
	// DefaultExcluded; an empty non-nil slice excludes nothing.
	Exclude []string

	// Now returns the generation time. Nil means time.Now.
	Now func() time.Time

	// Out receives the console text. Nil discards it.
	Out io.Writer
}

// Run exports doc.
func (e Exporter) Run(ctx context.Context, doc *catalog.Document) (*Report, error) {
	start := time.Now()
	rep, err := e.run(ctx, doc)
	assets, path := 0, e.path()
	if rep != nil {
		assets = rep.TotalAssets
	}
	observability.Pipeline().OnExportComplete(ctx, path, assets, time.Since(start), err)
	return rep, err
}

func (e Exporter) run(ctx context.Context, doc *catalog.Document) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	path := e.path()
	data, err := MarshalJSON(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode catalog")
	}
	if err := WriteFile(path, data); err != nil {
		return nil, err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	out := e.Out
	if out == nil {
		out = io.Discard
	}

	rep := &Report{
		Path:           path,
		Bytes:          len(data),
		ChecklistItems: len(Checklist),
		GeneratedAt:    now(),
	}

	var buf bytes.Buffer
	WriteHeader(&buf, path, rep.GeneratedAt)
	rep.Sections, rep.TotalAssets = WriteSummary(&buf, doc, e.exclude())
	WriteChecklist(&buf)
	WriteFooter(&buf, path)

	if _, err := out.Write(buf.Bytes()); err != nil {
		return rep, fmt.Errorf("write summary: %w", err)
	}
	return rep, nil
}

func (e Exporter) path() string {
	if e.Path == "" {
		return DefaultFilename
	}
	return e.Path
}

func (e Exporter) exclude() []string {
	if e.Exclude == nil {
		return DefaultExcluded
	}
	return e.Exclude
}

// MarshalJSON encodes doc with two-space indentation, keys in document order
// and no HTML escaping.
func MarshalJSON(doc *catalog.Document) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}

// WriteHeader prints the export banner.
func WriteHeader(w io.Writer, path string, at time.Time) {
	fmt.Fprintln(w, "=== MISJustice Alliance Media Assets Catalog ===")
	fmt.Fprintf(w, "Catalog saved to: %s\n", path)
	fmt.Fprintf(w, "Generated on: %s\n", at.Format(TimeLayout))
}

// WriteSummary prints one block per section not in exclude, listing every
// asset entry, and returns the printed section keys and the asset total.
func WriteSummary(w io.Writer, doc *catalog.Document, exclude []string) ([]string, int) {
	fmt.Fprintln(w, "\n=== Generated Media Assets Summary ===")

	var sections []string
	total := 0
	for _, s := range doc.Sections {
		if slices.Contains(exclude, s.Key) {
			continue
		}
		sections = append(sections, s.Key)
		fmt.Fprintf(w, "\n%s:\n", SectionTitle(s.Key))
		for _, e := range s.Entries {
			if !e.IsAsset() {
				continue
			}
			fmt.Fprintf(w, "  • %s - %s\n", e.Asset.File, e.Asset.Description)
			total++
		}
	}

	fmt.Fprintf(w, "\nTotal Media Assets Generated: %d\n", total)
	return sections, total
}

// WriteChecklist prints the developer checklist.
func WriteChecklist(w io.Writer) {
	fmt.Fprintln(w, "\n=== Developer Implementation Checklist ===")
	for _, item := range Checklist {
		fmt.Fprintln(w, item)
	}
}

// WriteFooter prints the closing file summary.
func WriteFooter(w io.Writer, path string) {
	fmt.Fprintln(w, "\n=== File Export Summary ===")
	fmt.Fprintf(w, "Media assets catalog: %s\n", path)
	fmt.Fprintln(w, "All generated images are ready for web implementation")
	fmt.Fprintln(w, "Recommendation: Convert to WebP format for production use")
}

// SectionTitle turns a section key such as "brand_identity" into
// "Brand Identity".
func SectionTitle(key string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}
