package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format identifies the dataset encoding.
type Format int

// Supported dataset formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxDatasetBytes     = 64 << 20
)

// Source describes where the dataset is read from. Path wins over URL.
type Source struct {
	Path    string
	URL     string
	Timeout time.Duration
	Client  *http.Client
	// MaxBytes caps the dataset size. Zero means 64 MiB.
	MaxBytes int64
}

// String names the source for logs.
func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return s.URL
}

// Load reads and decodes the dataset described by src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	raw, name, err := read(ctx, src)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw, DetectFormat(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// DetectFormat picks the format from a file name or URL path extension.
func DetectFormat(name string) Format {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" {
		name = u.Path
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func read(ctx context.Context, src Source) ([]byte, string, error) {
	switch {
	case src.Path != "":
		b, err := readFile(src)
		if err != nil {
			return nil, src.Path, fmt.Errorf("%w: %w", ErrRead, err)
		}
		return b, src.Path, nil
	case src.URL != "":
		b, err := fetch(ctx, src)
		if err != nil {
			return nil, src.URL, fmt.Errorf("%w: %s: %w", ErrRead, src.URL, err)
		}
		return b, src.URL, nil
	default:
		return nil, "", ErrNoSource
	}
}

func fetch(ctx context.Context, src Source) ([]byte, error) {
	timeout := src.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := src.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return readLimited(resp.Body, src.maxBytes())
}

func readFile(src Source) ([]byte, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, src.maxBytes())
}

func (s Source) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return maxDatasetBytes
}

// readLimited reads r fully and fails when it holds more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("dataset exceeds %d bytes", limit)
	}
	return b, nil
}

// document is the top-level dataset shape.
type document struct {
	Entries json.RawMessage `json:"entries"`
	Scores  json.RawMessage `json:"scores"`
}

// Parse decodes a dataset already in memory.
func Parse(raw []byte, format Format) (*Catalog, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(raw)
		if err != nil {
			return nil, err
		}
		raw = converted
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	entries, err := decodeArray(doc.Entries, "entries")
	if err != nil {
		return nil, err
	}
	records, err := decodeArray(doc.Scores, "scores")
	if err != nil {
		return nil, err
	}

	scores := make([]Score, len(records))
	for i, r := range records {
		scores[i] = NewScore(r)
	}
	return New(entries, scores)
}

// decodeArray treats a missing or null field as an empty collection.
func decodeArray(field json.RawMessage, name string) ([]json.RawMessage, error) {
	if len(field) == 0 || bytes.Equal(bytes.TrimSpace(field), []byte("null")) {
		return []json.RawMessage{}, nil
	}
	var out []json.RawMessage
	if err := json.Unmarshal(field, &out); err != nil {
		return nil, fmt.Errorf("%w: %s must be an array", ErrMalformed, name)
	}
	return out, nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	out, err := json.Marshal(jsonCompatible(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return out, nil
}

// jsonCompatible rewrites YAML mappings with non-string keys so the value can
// be encoded as JSON.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = jsonCompatible(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = jsonCompatible(val)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}
