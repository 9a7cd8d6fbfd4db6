package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/assetgrid/pkg/errors"
)

// Encoding identifies a catalog file encoding.
type Encoding string

const (
	EncodingYAML Encoding = "yaml"
	EncodingJSON Encoding = "json"
)

// EncodingFor derives the encoding from a file extension.
func EncodingFor(path string) (Encoding, error) {
	if err := errors.ValidateCatalogPath(path); err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return EncodingJSON, nil
	}
	return EncodingYAML, nil
}

// gridFile is the on-disk shape of a grid catalog.
type gridFile struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

// LoadGrid reads and validates a grid catalog file.
func LoadGrid(path string) ([]Category, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cats, err := ParseGrid(data, enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse %s", path)
	}
	return cats, nil
}

// ParseGrid decodes and validates a grid catalog.
func ParseGrid(data []byte, enc Encoding) ([]Category, error) {
	var f gridFile
	switch enc {
	case EncodingJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	case EncodingYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown encoding %q", enc)
	}
	cats := normalizeGrid(f.Categories)
	if err := ValidateGrid(cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// LoadDocument reads and validates a media catalog document.
func LoadDocument(path string) (*Document, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data, enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse %s", path)
	}
	return doc, nil
}

// ParseDocument decodes and validates a media catalog document, preserving
// key order for both encodings.
func ParseDocument(data []byte, enc Encoding) (*Document, error) {
	var f Fields
	switch enc {
	case EncodingJSON:
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, err
		}
	case EncodingYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
		v, err := valueFromNode(&root)
		if err != nil {
			return nil, err
		}
		obj, ok := v.(Fields)
		if !ok {
			return nil, fmt.Errorf("expected mapping at document root, got %T", v)
		}
		f = obj
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown encoding %q", enc)
	}

	doc, err := DocumentFromFields(f)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// valueFromNode converts a YAML node to the value types used by Fields.
func valueFromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Fields{}, nil
		}
		return valueFromNode(n.Content[0])
	case yaml.AliasNode:
		return valueFromNode(n.Alias)
	case yaml.MappingNode:
		out := make(Fields, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := valueFromNode(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, Field{Key: key, Value: val})
		}
		return out, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := valueFromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return collapseStrings(items), nil
	case yaml.ScalarNode:
		return scalarFromNode(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// scalarFromNode keeps the resolved type of ints, bools and nulls. Floats
// that JSON cannot represent (.inf, .nan) stay strings.
func scalarFromNode(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!int", "!!bool", "!!null":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return n.Value, nil
		}
		return f, nil
	default:
		return n.Value, nil
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
