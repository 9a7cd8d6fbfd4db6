package catalog

import "github.com/matzehuels/assetgrid/pkg/errors"

// ValidateGrid checks that a grid catalog can be laid out: at least one
// category, every category named, every asset with a file name.
func ValidateGrid(cats []Category) error {
	if len(cats) == 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "grid catalog has no categories")
	}
	seen := make(map[string]bool, len(cats))
	for i, c := range cats {
		if c.Name == "" {
			return errors.New(errors.ErrCodeInvalidCatalog, "category %d has no name", i)
		}
		if seen[c.Name] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		for j, a := range c.Assets {
			if a.File == "" {
				return errors.New(errors.ErrCodeInvalidCatalog, "%s: asset %d has no file", c.Name, j)
			}
		}
	}
	return nil
}

// Validate checks that the document has sections and that keys are unique
// within their parent.
func (d *Document) Validate() error {
	if len(d.Sections) == 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "document has no sections")
	}
	sections := make(map[string]bool, len(d.Sections))
	for _, s := range d.Sections {
		if s.Key == "" {
			return errors.New(errors.ErrCodeInvalidCatalog, "section with empty key")
		}
		if sections[s.Key] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate section %q", s.Key)
		}
		sections[s.Key] = true

		entries := make(map[string]bool, len(s.Entries))
		for _, e := range s.Entries {
			if entries[e.Name] {
				return errors.New(errors.ErrCodeInvalidCatalog, "%s: duplicate entry %q", s.Key, e.Name)
			}
			entries[e.Name] = true
			if e.IsAsset() && e.Asset.File == "" {
				return errors.New(errors.ErrCodeInvalidCatalog, "%s.%s: asset has no file", s.Key, e.Name)
			}
		}
	}
	return nil
}
