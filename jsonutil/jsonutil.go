// Package jsonutil provides JSON text helpers and a tag-based decode
// registry.
//
// The registry replaces positional construction driven by document key
// enumeration order. Each tag is registered together with the field names
// its decode function expects, in a fixed declared order, so the layout of
// the incoming document no longer matters.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ToText returns the canonical JSON text of v using standard serialization
// rules: struct fields in declaration order, array elements in order.
func ToText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeFunc builds a value from arguments listed in the parameter order
// declared at registration time.
type DecodeFunc func(args []any) (any, error)

var (
	ErrDuplicateTag = errors.New("type tag is already registered")
	ErrUnknownTag   = errors.New("type tag is not registered")
	ErrMissingField = errors.New("document is missing a declared field")
)

type entry struct {
	params []string
	fn     DecodeFunc
}

// Registry maps type tags to decode functions. Not safe for concurrent
// registration, register everything during program setup.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register associates tag with fn. params names the document fields whose
// values are handed to fn, in that exact order.
func (r *Registry) Register(tag string, params []string, fn DecodeFunc) error {
	if _, ok := r.entries[tag]; ok {
		return fmt.Errorf("%q: %w", tag, ErrDuplicateTag)
	}
	ps := make([]string, len(params))
	copy(ps, params)
	r.entries[tag] = entry{params: ps, fn: fn}
	return nil
}

// Tags returns all registered tags sorted alphabetically.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Decode parses data as a JSON object, picks the declared fields by name
// and calls the tag's decode function with their values in declared order.
// Extra document fields are ignored. JSON decode failures are returned
// unchanged.
func (r *Registry) Decode(tag string, data []byte) (any, error) {
	e, ok := r.entries[tag]
	if !ok {
		return nil, fmt.Errorf("%q: %w", tag, ErrUnknownTag)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	args := make([]any, len(e.params))
	for i, name := range e.params {
		v, ok := doc[name]
		if !ok {
			return nil, fmt.Errorf("%q field %q: %w", tag, name, ErrMissingField)
		}
		args[i] = v
	}
	return e.fn(args)
}
