// Package dedupe removes value-equal duplicates from sequences of JSON records.
package dedupe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Deduper records JSON values by canonical content.
type Deduper interface {
	// SeenAndRecord reports whether an equal value was recorded before and
	// records it if not. Invalid JSON is returned as ErrInvalidValue.
	SeenAndRecord(value []byte) (bool, error)

	Size() int
}

// valueSet buckets canonical encodings by their xxhash digest. Collisions are
// resolved by comparing the canonical bytes.
type valueSet struct {
	mu      sync.Mutex
	buckets map[uint64][][]byte
	size    int
}

// NewDeduper creates an empty value deduper.
func NewDeduper(opts ...Option) Deduper {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &valueSet{buckets: make(map[uint64][][]byte, o.expected)}
}

func (s *valueSet) SeenAndRecord(value []byte) (bool, error) {
	canon, err := Canonical(value)
	if err != nil {
		return false, err
	}
	sum := xxhash.Sum64(canon)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.buckets[sum] {
		if bytes.Equal(existing, canon) {
			return true, nil
		}
	}
	s.buckets[sum] = append(s.buckets[sum], canon)
	s.size++
	return false, nil
}

func (s *valueSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Distinct returns values with later duplicates removed, keeping the first
// occurrence of each and the original order.
func Distinct[T ~[]byte](values []T, opts ...Option) ([]T, error) {
	d := NewDeduper(append([]Option{WithExpectedSize(len(values))}, opts...)...)
	out := make([]T, 0, len(values))
	for i, v := range values {
		seen, err := d.SeenAndRecord(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		if !seen {
			out = append(out, v)
		}
	}
	return out, nil
}

// Canonical re-encodes a JSON value so that equal values produce equal bytes:
// object keys are sorted and insignificant whitespace is dropped. Numbers are
// compared as float64, so 1, 1.0 and 1e0 are the same value. Literals outside
// the float64 range keep their written form. Input that is not valid UTF-8 is
// rejected rather than having its bad bytes replaced.
func Canonical(value []byte) ([]byte, error) {
	if !utf8.Valid(value) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrInvalidValue)
	}
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidValue)
	}
	out, err := json.Marshal(normalizeNumbers(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return out, nil
}

// normalizeNumbers rewrites every json.Number in v as a float64 in place.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil || math.IsInf(f, 0) {
			return t
		}
		if f == 0 {
			// -0 and 0 are equal values
			return float64(0)
		}
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	default:
		return v
	}
}
