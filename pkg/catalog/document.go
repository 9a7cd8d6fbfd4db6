package catalog

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Entry is one named item of a [Section]. Fields holds the entry exactly as
// read; Asset, when set, is a typed view of the same mapping.
type Entry struct {
	Name   string
	Asset  *Asset
	Fields Fields
}

// IsAsset reports whether the entry describes a media file.
func (e Entry) IsAsset() bool { return e.Asset != nil }

// Section is a top-level key of a [Document].
type Section struct {
	Key     string
	Entries []Entry
}

// HasAssets reports whether at least one entry of the section is an asset.
func (s Section) HasAssets() bool {
	return slices.ContainsFunc(s.Entries, Entry.IsAsset)
}

// Document is the media asset catalog: an ordered mapping of sections.
type Document struct {
	Sections []Section
}

// Keys returns the top-level section keys in order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		keys[i] = s.Key
	}
	return keys
}

// Section returns the section stored under key.
func (d *Document) Section(key string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Records flattens every asset entry of the document, in order.
func (d *Document) Records() []Record {
	var out []Record
	for _, s := range d.Sections {
		for _, e := range s.Entries {
			if !e.IsAsset() {
				continue
			}
			a := *e.Asset
			a.Category = s.Key
			out = append(out, Record{Section: s.Key, Name: e.Name, Asset: a})
		}
	}
	return out
}

// Fields converts the document to its generic ordered-mapping form.
func (d *Document) Fields() Fields {
	out := make(Fields, 0, len(d.Sections))
	for _, s := range d.Sections {
		entries := make(Fields, 0, len(s.Entries))
		for _, e := range s.Entries {
			var v any = e.Fields
			if e.Fields == nil && e.IsAsset() {
				v = e.Asset.Fields()
			}
			entries = append(entries, Field{Key: e.Name, Value: v})
		}
		out = append(out, Field{Key: s.Key, Value: entries})
	}
	return out
}

// MarshalJSON encodes the document as a JSON object preserving key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.Fields().MarshalJSON()
}

// UnmarshalJSON decodes a document, preserving key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	var f Fields
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	doc, err := DocumentFromFields(f)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// DocumentFromFields builds a document from a generic ordered mapping.
// Every top-level value and every entry value must be a mapping. Entries with
// a string "file" key also get an [Asset] view. Every entry keeps its fields,
// so encoding the document again reproduces its keys and order.
func DocumentFromFields(f Fields) (*Document, error) {
	doc := &Document{Sections: make([]Section, 0, len(f))}
	for _, top := range f {
		group, ok := top.Value.(Fields)
		if !ok {
			return nil, fmt.Errorf("section %q: expected mapping, got %T", top.Key, top.Value)
		}
		sec := Section{Key: top.Key, Entries: make([]Entry, 0, len(group))}
		for _, item := range group {
			fields, ok := item.Value.(Fields)
			if !ok {
				return nil, fmt.Errorf("%s.%s: expected mapping, got %T", top.Key, item.Key, item.Value)
			}
			entry, err := entryFromFields(top.Key, item.Key, fields)
			if err != nil {
				return nil, err
			}
			sec.Entries = append(sec.Entries, entry)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

func entryFromFields(section, name string, f Fields) (Entry, error) {
	if v, _ := f.Get("file"); !isString(v) {
		return Entry{Name: name, Fields: f}, nil
	}
	a := &Asset{
		File:        f.String("file"),
		Description: f.String("description"),
		Usage:       f.String("usage"),
		Category:    section,
	}
	if v, ok := f.Get("specifications"); ok {
		specs, ok := v.(Fields)
		if !ok {
			return Entry{}, fmt.Errorf("%s.%s.specifications: expected mapping, got %T", section, name, v)
		}
		a.Specifications = specs
	}
	return Entry{Name: name, Asset: a, Fields: f}, nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

var _ json.Marshaler = (*Document)(nil)
