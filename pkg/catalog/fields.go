package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Field is a single key/value pair of an ordered mapping.
// Value is a string, a []string, a nested [Fields], or (for values decoded
// from files) a number (json.Number from JSON, int or float64 from YAML), a
// bool, nil or a []any.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered mapping. It encodes to a JSON object whose keys appear
// in slice order.
type Fields []Field

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	for _, fl := range f {
		if fl.Key == key {
			return fl.Value, true
		}
	}
	return nil, false
}

// String returns the string stored under key, or "" if the key is missing or
// holds a non-string value.
func (f Fields) String(key string) string {
	v, _ := f.Get(key)
	s, _ := v.(string)
	return s
}

// Keys returns the keys in order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, fl := range f {
		keys[i] = fl.Key
	}
	return keys
}

// MarshalJSON encodes the fields as a JSON object in key order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fl := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(fl.Key)
		if err != nil {
			return nil, err
		}
		val, err := marshalNoEscape(fl.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fl.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return err
	}
	obj, ok := v.(Fields)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*f = obj
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeValue reads one JSON value from dec. Objects become Fields, arrays of
// strings become []string, other arrays become []any. Numbers stay
// json.Number when dec uses numbers, so they encode back unchanged.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var out Fields
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				out = append(out, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if out == nil {
				out = Fields{}
			}
			return out, nil
		case '[':
			var items []any
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return collapseStrings(items), nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return t, nil
	}
}

// collapseStrings returns items as a []string when every item is a string.
func collapseStrings(items []any) any {
	strs := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return items
		}
		strs = append(strs, s)
	}
	return strs
}
