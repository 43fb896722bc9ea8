package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"gopkg.in/src-d/go-billy.v4/memfs"
	"gopkg.in/src-d/go-billy.v4/util"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c := NewFileCache(memfs.New())
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png-bytes"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v", hit, err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Get(k) = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewFileCache(memfs.New()).(*FileCache)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "week", []byte("x"), TTLImage); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(TTLImage - time.Second)
	if _, hit, _ := c.Get(ctx, "week"); !hit {
		t.Error("entry should live until its TTL elapses")
	}

	now = now.Add(2 * time.Second)
	if _, hit, _ := c.Get(ctx, "week"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := c.fs.Stat(c.path("week")); err == nil {
		t.Error("expired entry should be removed")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero TTL should never expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()
	c := NewFileCache(fs).(*FileCache)

	if err := c.Set(ctx, "bad", []byte("ok"), 0); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(fs, c.path("bad"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
	if _, err := fs.Stat(c.path("bad")); err == nil {
		t.Error("corrupt entry should be removed")
	}
}

func TestNewDirCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir() + "/nested/cache"
	c, err := NewDirCache(dir)
	if err != nil {
		t.Fatalf("NewDirCache error: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("expected hit")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ImageKeyOpts{Scale: 3, Seed: 42, Palette: "rgb", Zoom: 1, Format: "png"}
	ik := k.ImageKey(base)
	if !strings.HasPrefix(ik, "image:3:") {
		t.Errorf("ImageKey unexpected: %s", ik)
	}
	if ik != k.ImageKey(base) {
		t.Error("ImageKey should be deterministic")
	}

	variants := []ImageKeyOpts{base, base, base, base, base}
	variants[0].Seed = 43
	variants[1].Palette = "hsluv"
	variants[2].Zoom = 2
	variants[3].Format = "svg"
	variants[4].Scale = 4
	for _, v := range variants {
		if k.ImageKey(v) == ik {
			t.Errorf("ImageKey(%+v) should differ from base", v)
		}
	}

	tk1 := k.TreeKey(TreeKeyOpts{Scale: 2, Seed: 1, Format: "svg"})
	tk2 := k.TreeKey(TreeKeyOpts{Scale: 2, Seed: 1, Format: "svg", Detailed: true})
	if tk1 == tk2 {
		t.Error("Different TreeKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(tk1, "tree:2:") {
		t.Errorf("TreeKey unexpected: %s", tk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1.0.0:")
	opts := ImageKeyOpts{Scale: 2, Seed: 1, Format: "png"}

	key := scoped.ImageKey(opts)
	if key != "v1.0.0:"+NewDefaultKeyer().ImageKey(opts) {
		t.Errorf("ScopedKeyer ImageKey unexpected: %s", key)
	}
	if !strings.HasPrefix(scoped.TreeKey(TreeKeyOpts{}), "v1.0.0:tree:") {
		t.Error("ScopedKeyer TreeKey should be prefixed")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.ImageKey(ImageKeyOpts{Scale: 1}); !strings.HasPrefix(key, "prefix:image:1:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
