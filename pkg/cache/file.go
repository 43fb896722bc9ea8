package cache

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path"
	"time"

	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
	"gopkg.in/src-d/go-billy.v4/util"
)

// FileCache keeps one JSON document per key on a billy filesystem. Documents
// are sharded into subdirectories by the first byte of the key's hash.
type FileCache struct {
	fs  billy.Filesystem
	now func() time.Time
}

// NewFileCache creates a cache rooted at fs.
func NewFileCache(fs billy.Filesystem) Cache {
	return &FileCache{fs: fs, now: time.Now}
}

// NewDirCache creates a cache rooted at dir on the local disk, creating dir
// when missing.
func NewDirCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return NewFileCache(osfs.New(dir)), nil
}

// document is the on-disk form of an entry. A zero Expires never expires.
type document struct {
	Data    []byte    `json:"data"`
	Expires time.Time `json:"expires"`
}

func (d document) expired(now time.Time) bool {
	return !d.Expires.IsZero() && now.After(d.Expires)
}

// Get returns the entry for key. Unreadable or expired documents are removed
// and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	name := c.path(key)
	raw, err := c.read(name)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var doc document
	if json.Unmarshal(raw, &doc) != nil || doc.expired(c.now()) {
		_ = c.fs.Remove(name)
		return nil, false, nil
	}
	return doc.Data, true, nil
}

func (c *FileCache) read(name string) ([]byte, error) {
	f, err := c.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Set writes data under key, expiring after ttl when ttl is positive.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	doc := document{Data: data}
	if ttl > 0 {
		doc.Expires = c.now().Add(ttl)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	name := c.path(key)
	if err := c.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return err
	}
	return util.WriteFile(c.fs, name, raw, 0o644)
}

// Delete removes key.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := c.fs.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op; every operation opens and closes its own file.
func (c *FileCache) Close() error { return nil }

// path maps key to "<hash[:2]>/<hash[2:]>.json".
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return path.Join(h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
