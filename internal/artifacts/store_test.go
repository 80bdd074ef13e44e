package artifacts

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStorePut(t *testing.T) {
	t.Run("writes pretty json", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFSStore(dir)

		path, err := store.Put(context.Background(), "run-1", "generation", map[string]any{"a": 1})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "run-1_generation.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, float64(1), got["a"])
	})

	t.Run("write-once per run and kind", func(t *testing.T) {
		store := NewFSStore(t.TempDir())

		_, err := store.Put(context.Background(), "run-1", "generation", "x")
		require.NoError(t, err)

		_, err = store.Put(context.Background(), "run-1", "generation", "y")
		require.Error(t, err)

		// Other kinds and runs are unaffected.
		_, err = store.Put(context.Background(), "run-1", "evaluation", "z")
		require.NoError(t, err)
		_, err = store.Put(context.Background(), "run-2", "generation", "w")
		require.NoError(t, err)
	})

	t.Run("sanitizes hostile names", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFSStore(dir)

		path, err := store.Put(context.Background(), "../../etc", "a/b c", "x")

		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(path))
	})

	t.Run("rejects empty keys", func(t *testing.T) {
		store := NewFSStore(t.TempDir())
		_, err := store.Put(context.Background(), "", "generation", "x")
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		store := NewFSStore(t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Put(ctx, "run-1", "generation", "x")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "run_1-ok", want: "run_1-ok"},
		{in: "a/b..c d", want: "a-b--c-d"},
		{in: "", want: "artifact"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in), "input %q", tt.in)
	}
}
