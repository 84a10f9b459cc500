// Package catalog holds the read-only dataset served by the API: opaque
// entries and point-carrying score records.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/catalog/internal/domain/dedupe"
)

// Entry is an opaque JSON record.
type Entry = json.RawMessage

// Score is a score record. Raw is the record as loaded; Points is its numeric
// points field, nil when absent or not a number.
type Score struct {
	Raw    json.RawMessage
	Points *float64
}

// MarshalJSON emits the record exactly as it was loaded.
func (s Score) MarshalJSON() ([]byte, error) {
	if len(s.Raw) == 0 {
		return []byte("null"), nil
	}
	return s.Raw, nil
}

// NewScore decodes a single score record.
func NewScore(raw json.RawMessage) Score {
	s := Score{Raw: raw}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}
	var p float64
	if v, ok := fields["points"]; ok && json.Unmarshal(v, &p) == nil {
		s.Points = &p
	}
	return s
}

// Catalog is immutable once built. Accessors return copies.
type Catalog struct {
	entries  []Entry
	distinct []Entry
	scores   []Score
	loadedAt time.Time
}

// New builds a Catalog and precomputes the distinct entry set.
func New(entries []Entry, scores []Score) (*Catalog, error) {
	entries = cloneEntries(entries)
	distinct, err := dedupe.Distinct(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: entries: %w", ErrMalformed, err)
	}
	return &Catalog{
		entries:  entries,
		distinct: distinct,
		scores:   append([]Score(nil), scores...),
		loadedAt: time.Now(),
	}, nil
}

// Entries returns every entry, duplicates included, in dataset order.
func (c *Catalog) Entries() []Entry { return append([]Entry{}, c.entries...) }

// Distinct returns the value-distinct entries in first-occurrence order.
func (c *Catalog) Distinct() []Entry { return append([]Entry{}, c.distinct...) }

// Scores returns the score records in dataset order.
func (c *Catalog) Scores() []Score { return append([]Score{}, c.scores...) }

// LoadedAt reports when the catalog was built.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// Stats summarizes catalog sizes.
type Stats struct {
	Entries  int `json:"entries"`
	Distinct int `json:"distinct_entries"`
	Scores   int `json:"scores"`
}

// Stats returns the catalog sizes.
func (c *Catalog) Stats() Stats {
	return Stats{Entries: len(c.entries), Distinct: len(c.distinct), Scores: len(c.scores)}
}

// cloneEntries copies the slice and the bytes behind each entry so callers
// cannot reach catalog state through their own buffers.
func cloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry(bytes.Clone(e))
	}
	return out
}
