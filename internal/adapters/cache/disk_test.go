package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskSnapshots(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := NewDiskSnapshots(dir)
	require.NoError(t, err)

	clock := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	t.Run("Miss", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "snapshot:habit")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Set writes one file per key", func(t *testing.T) {
		data := []byte(`[{"id":"h1","name":"Read"}]`)
		require.NoError(t, c.Set(ctx, "snapshot:habit", data, time.Minute))

		_, err := os.Stat(filepath.Join(dir, "snapshot", "habit.json"))
		assert.NoError(t, err)

		got, ok, err := c.Get(ctx, "snapshot:habit")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, string(data), string(got))
	})

	t.Run("Expired entries are dropped", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "snapshot:note", []byte(`[]`), time.Minute))
		clock = clock.Add(2 * time.Minute)

		_, ok, err := c.Get(ctx, "snapshot:note")
		assert.NoError(t, err)
		assert.False(t, ok)
		_, err = os.Stat(filepath.Join(dir, "snapshot", "note.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Zero ttl never expires", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "snapshot:task", []byte(`[]`), 0))
		clock = clock.Add(24 * time.Hour)

		_, ok, err := c.Get(ctx, "snapshot:task")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Corrupted entry is a miss", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot", "expense.json"), []byte("garbage"), 0o644))

		_, ok, err := c.Get(ctx, "snapshot:expense")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		assert.NoError(t, c.Delete(ctx, "snapshot:task"))
		assert.NoError(t, c.Delete(ctx, "snapshot:task"))
		_, ok, _ := c.Get(ctx, "snapshot:task")
		assert.False(t, ok)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "snapshot:habit", []byte(`[]`), 0))
		require.NoError(t, c.Clear())
		_, ok, _ := c.Get(ctx, "snapshot:habit")
		assert.False(t, ok)
	})
}

func TestNewDiskSnapshots_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	c, err := NewDiskSnapshots("~/kanso-cache")
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "snapshot:habit", []byte(`[]`), 0))

	_, err = os.Stat(filepath.Join(home, "kanso-cache", "snapshot", "habit.json"))
	assert.NoError(t, err)
}
