// Package artifacts persists pipeline outputs as JSON files keyed by run.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists one artifact payload per (runID, kind) pair.
type Store interface {
	// Put writes payload under the given run and kind, returning the
	// location of the stored artifact. Writing the same (runID, kind)
	// twice is an error: artifacts are write-once.
	Put(ctx context.Context, runID, kind string, payload any) (string, error)
}

// FSStore writes artifacts as pretty-printed JSON files under a directory,
// one file per (runID, kind). The directory is created on first use.
type FSStore struct {
	dir string

	mu      sync.Mutex
	written map[string]struct{}
}

// NewFSStore builds a filesystem store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir, written: make(map[string]struct{})}
}

// Put implements Store. Filenames are <runID>_<kind>.json with both parts
// sanitized, so titles and arbitrary labels cannot escape the directory.
func (s *FSStore) Put(ctx context.Context, runID, kind string, payload any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if runID == "" || kind == "" {
		return "", fmt.Errorf("artifacts: empty run id or kind")
	}

	key := runID + "/" + kind
	s.mu.Lock()
	if _, dup := s.written[key]; dup {
		s.mu.Unlock()
		return "", fmt.Errorf("artifacts: %s already written for run %s", kind, runID)
	}
	s.written[key] = struct{}{}
	s.mu.Unlock()

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("artifacts: marshal %s: %w", kind, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("artifacts: create dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", sanitize(runID), sanitize(kind))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("artifacts: write %s: %w", name, err)
	}
	return path, nil
}

// sanitize keeps letters, digits, dash, and underscore; everything else
// becomes a dash. Results are capped so pathological titles stay usable as
// filenames.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	out := b.String()
	const maxLen = 100
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	if out == "" {
		out = "artifact"
	}
	return out
}
