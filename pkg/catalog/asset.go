package catalog

// Asset is one catalogued media file.
type Asset struct {
	File        string `json:"file" yaml:"file"`
	Description string `json:"description" yaml:"description"`
	Usage       string `json:"usage" yaml:"usage"`

	// Category is the name of the grid row or document section the asset
	// belongs to. It is derived from the asset's position and never encoded.
	Category string `json:"-" yaml:"-"`

	// Specifications holds optional per-asset technical requirements. Values
	// are strings or lists of strings.
	Specifications Fields `json:"specifications,omitempty" yaml:"-"`
}

// Fields returns the asset as an ordered mapping: file, description, usage
// and, when present, specifications.
func (a *Asset) Fields() Fields {
	f := Fields{
		{Key: "file", Value: a.File},
		{Key: "description", Value: a.Description},
		{Key: "usage", Value: a.Usage},
	}
	if a.Specifications != nil {
		f = append(f, Field{Key: "specifications", Value: a.Specifications})
	}
	return f
}

// Category is a named row of assets in the grid chart.
type Category struct {
	Name   string  `json:"name" yaml:"name"`
	Assets []Asset `json:"assets" yaml:"assets"`
}

// Record is an asset together with its location in a [Document].
type Record struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Asset
}

// MaxAssets returns the asset count of the widest category.
func MaxAssets(cats []Category) int {
	n := 0
	for _, c := range cats {
		n = max(n, len(c.Assets))
	}
	return n
}

// CountAssets returns the total number of assets across all categories.
func CountAssets(cats []Category) int {
	n := 0
	for _, c := range cats {
		n += len(c.Assets)
	}
	return n
}

// normalizeGrid stamps every asset with its category name.
func normalizeGrid(cats []Category) []Category {
	for i := range cats {
		for j := range cats[i].Assets {
			cats[i].Assets[j].Category = cats[i].Name
		}
	}
	return cats
}
