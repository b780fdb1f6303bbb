package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNotObject = errors.New("expected a JSON object")

// Registry holds values by id in first-registration order.
// Setting an existing id replaces the value and keeps its position.
type Registry[T any] struct {
	ids   []string
	items map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

func (r *Registry[T]) Set(id string, v T) {
	if r.items == nil {
		r.items = make(map[string]T)
	}
	if _, ok := r.items[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.items[id] = v
}

func (r *Registry[T]) Get(id string) (T, bool) {
	v, ok := r.items[id]
	return v, ok
}

func (r *Registry[T]) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

func (r *Registry[T]) Len() int { return len(r.ids) }

// IDs returns a copy of the registered ids in registration order.
func (r *Registry[T]) IDs() []string {
	return append([]string(nil), r.ids...)
}

func (r *Registry[T]) MarshalJSON() ([]byte, error) {
	return marshalOrdered(r.ids, func(id string) any { return r.items[id] })
}

// marshalOrdered writes a JSON object whose keys appear in the given order.
func marshalOrdered(keys []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(value(k))
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeOrderedObject walks the members of a JSON object in document order.
func DecodeOrderedObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("member %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
