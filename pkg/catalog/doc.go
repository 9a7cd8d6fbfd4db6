// Package catalog defines the media asset catalog shared by the grid renderer
// and the JSON exporter.
//
// # Data Model
//
// An [Asset] is one catalogued media file with descriptive metadata. Assets
// are grouped in two independent shapes:
//
//   - [Category]: an ordered list of assets drawn as one row of the grid chart.
//   - [Document]: an ordered nested mapping of sections. Asset sections map
//     entry names to assets; reference sections (design specifications, usage
//     guidelines) map group names to free-form [Fields].
//
// Key order is significant everywhere: it is preserved when a [Document] is
// encoded to JSON and when one is loaded from JSON or YAML.
//
// # Built-in Catalogs
//
// [DefaultGrid] and [DefaultDocument] return fresh copies of the built-in
// catalogs. [LoadGrid] and [LoadDocument] read replacements from .yaml/.yml
// or .json files.
package catalog
