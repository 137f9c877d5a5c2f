package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// RawField is one key of a JSON object.
type RawField struct {
	Key   string
	Value any
}

// RawObject is a JSON object that remembers the order of its keys.
// Numbers are kept as json.Number so integers and floats stay distinguishable.
type RawObject []RawField

// ErrNotAnObject is returned when the decoded JSON value is not an object.
var ErrNotAnObject = errors.New("json value is not an object")

// DecodeRawObject decodes a JSON object preserving key order. A repeated key
// keeps its first position and its last value.
func DecodeRawObject(data []byte) (RawObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotAnObject
	}

	obj := RawObject{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		if i, seen := index[key]; seen {
			obj[i].Value = value
			continue
		}
		index[key] = len(obj)
		obj = append(obj, RawField{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after json object")
	}
	return obj, nil
}

// Get returns the value stored under key.
func (o RawObject) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in their original order.
func (o RawObject) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, f := range o {
		keys = append(keys, f.Key)
	}
	return keys
}

// MarshalJSON encodes the object keeping key order.
func (o RawObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
