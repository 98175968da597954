package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

const DefaultDiskPath = "~/.kanso/cache"

type diskEntry struct {
	Expires time.Time       `json:"expires"`
	Data    json.RawMessage `json:"data"`
}

// DiskSnapshots keeps list snapshots as files under a base directory, one
// file per key. Expired entries are dropped on read.
type DiskSnapshots struct {
	d   *diskv.Diskv
	now func() time.Time
}

// NewDiskSnapshots opens a snapshot cache rooted at path. A leading "~" is
// expanded to the user's home directory.
func NewDiskSnapshots(path string) (*DiskSnapshots, error) {
	if path == "" {
		path = DefaultDiskPath
	}
	base, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache path %q: %w", path, err)
	}

	return &DiskSnapshots{
		d: diskv.New(diskv.Options{
			BasePath:          base,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024,
		}),
		now: time.Now,
	}, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ":")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, ".json")
	if len(pathKey.Path) == 0 {
		return name
	}
	return strings.Join(pathKey.Path, ":") + ":" + name
}

func (c *DiskSnapshots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.d.Has(key) {
		return nil, false, nil
	}
	raw, err := c.d.Read(key)
	if err != nil {
		return nil, false, err
	}

	var e diskEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Printf("[CACHE] Corrupted disk entry %s, removing", key)
		_ = c.d.Erase(key)
		return nil, false, nil
	}
	if !e.Expires.IsZero() && c.now().After(e.Expires) {
		_ = c.d.Erase(key)
		return nil, false, nil
	}
	return e.Data, true, nil
}

func (c *DiskSnapshots) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := diskEntry{Data: data}
	if ttl > 0 {
		e.Expires = c.now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.d.Write(key, raw)
}

func (c *DiskSnapshots) Delete(ctx context.Context, key string) error {
	if !c.d.Has(key) {
		return nil
	}
	return c.d.Erase(key)
}

// Clear removes every snapshot.
func (c *DiskSnapshots) Clear() error {
	return c.d.EraseAll()
}
