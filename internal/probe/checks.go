package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/catalog/internal/domain/dedupe"
)

// checkSample validates one /random-entries response. distinct is the
// canonical distinct set of the dataset, nil when no dataset was given.
func checkSample(resp response, size int, distinct map[string]struct{}) []string {
	if resp.status != http.StatusOK {
		return []string{fmt.Sprintf("/random-entries: status %d, want 200", resp.status)}
	}

	var sample []json.RawMessage
	if err := json.Unmarshal(resp.body, &sample); err != nil {
		return []string{fmt.Sprintf("/random-entries: body is not a JSON array: %v", err)}
	}
	if sample == nil {
		return []string{"/random-entries: body is null, want an array"}
	}

	var out []string
	if len(sample) > size {
		out = append(out, fmt.Sprintf("/random-entries: %d entries, want at most %d", len(sample), size))
	}

	seen := dedupe.NewDeduper(dedupe.WithExpectedSize(len(sample)))
	for i, e := range sample {
		dup, err := seen.SeenAndRecord(e)
		if err != nil {
			out = append(out, fmt.Sprintf("/random-entries: entry %d: %v", i, err))
			continue
		}
		if dup {
			out = append(out, fmt.Sprintf("/random-entries: entry %d repeats an earlier entry", i))
		}
		if distinct == nil {
			continue
		}
		canon, _ := dedupe.Canonical(e)
		if _, ok := distinct[string(canon)]; !ok {
			out = append(out, fmt.Sprintf("/random-entries: entry %d is not in the dataset: %s", i, e))
		}
	}

	if distinct != nil {
		if want := min(size, len(distinct)); len(sample) != want {
			out = append(out, fmt.Sprintf("/random-entries: %d entries, want exactly %d", len(sample), want))
		}
	}
	return out
}

// checkEmptyStatus validates a route that must answer with a bare status.
func checkEmptyStatus(path string, resp response, want int) []string {
	var out []string
	if resp.status != want {
		out = append(out, fmt.Sprintf("%s: status %d, want %d", path, resp.status, want))
	}
	if len(resp.body) != 0 {
		out = append(out, fmt.Sprintf("%s: body has %d bytes, want none", path, len(resp.body)))
	}
	return out
}

// checkScores validates that /scores returns an empty array.
func checkScores(resp response) []string {
	if resp.status != http.StatusOK {
		return []string{fmt.Sprintf("/scores: status %d, want 200", resp.status)}
	}
	if got := bytes.TrimSpace(resp.body); !bytes.Equal(got, []byte("[]")) {
		return []string{fmt.Sprintf("/scores: body %q, want []", got)}
	}
	return nil
}
