package tilekit

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Loader is the load/unload strategy a ResourceCache is parameterized with.
// Load turns a path inside fsys into a resource handle. Unload releases a
// handle; it is called exactly once for every value the cache stored and may
// be nil when the resource needs no explicit release.
type Loader[T any] struct {
	Load   func(fsys fs.FS, path string) (T, error)
	Unload func(T)
}

// noCopy may be embedded into structs which must not be copied after first
// use. go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ResourceCache is a keyed, owning store of loaded resources. Every value in
// the cache is released through the loader's Unload, either by Unload(key),
// by being overwritten, or by Close. Values returned by Get are borrowed: they
// must not be used after their key is unloaded or the cache is closed.
//
// A ResourceCache must not be copied; always pass it by pointer.
type ResourceCache[T any] struct {
	noCopy noCopy

	kind    string
	fsys    fs.FS
	loader  Loader[T]
	entries map[string]T
	closed  bool
}

// NewResourceCache creates an empty cache reading files from fsys. kind names
// the resource type in log lines and errors ("image", "font", ...).
func NewResourceCache[T any](kind string, fsys fs.FS, loader Loader[T]) *ResourceCache[T] {
	if loader.Load == nil {
		panic("tilekit: NewResourceCache requires a Load function")
	}
	return &ResourceCache[T]{
		kind:    kind,
		fsys:    fsys,
		loader:  loader,
		entries: make(map[string]T),
	}
}

// Kind returns the resource kind this cache was created with.
func (c *ResourceCache[T]) Kind() string {
	return c.kind
}

// Load runs the loader on path without associating the result with a key.
// The caller owns the returned value.
func (c *ResourceCache[T]) Load(p string) (T, error) {
	var zero T
	if c.closed {
		return zero, ErrCacheClosed
	}
	v, err := c.loader.Load(c.fsys, p)
	if err != nil {
		return zero, fmt.Errorf("tilekit: load %s %s: %w", c.kind, p, err)
	}
	return v, nil
}

// Add loads path and stores it under key, replacing (and releasing) any
// previous entry.
func (c *ResourceCache[T]) Add(key, p string) (T, error) {
	v, err := c.Load(p)
	if err != nil {
		return v, err
	}
	c.insert(key, v)
	return v, nil
}

// Set stores an already constructed resource under key. Ownership moves into
// the cache: the value is released by Unload or Close.
func (c *ResourceCache[T]) Set(key string, v T) error {
	if c.closed {
		return ErrCacheClosed
	}
	c.insert(key, v)
	return nil
}

func (c *ResourceCache[T]) insert(key string, v T) {
	if old, ok := c.entries[key]; ok {
		c.release(old)
	}
	c.entries[key] = v
	logger.Info("asset loaded", "kind", c.kind, "key", key)
}

// LoadAll loads every regular file directly inside dir. Each file is stored
// under its name without extension, overwriting existing keys. A file that
// fails to load is skipped; all failures are returned joined.
func (c *ResourceCache[T]) LoadAll(dir string) error {
	if c.closed {
		return ErrCacheClosed
	}
	entries, err := fs.ReadDir(c.fsys, dir)
	if err != nil {
		return fmt.Errorf("tilekit: list %s directory %s: %w", c.kind, dir, err)
	}
	var errs []error
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if _, err := c.Add(KeyFromPath(e.Name()), path.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get returns the resource stored under key. A missing key is logged and
// reported as a *NotFoundError (errors.Is(err, ErrNotFound) holds).
func (c *ResourceCache[T]) Get(key string) (T, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	logger.Error("missing asset", "kind", c.kind, "key", key)
	var zero T
	return zero, &NotFoundError{Kind: c.kind, Key: key}
}

// MustGet is like Get but panics when the key is missing.
func (c *ResourceCache[T]) MustGet(key string) T {
	v, err := c.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether key is present.
func (c *ResourceCache[T]) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of stored resources.
func (c *ResourceCache[T]) Len() int {
	return len(c.entries)
}

// Keys returns the stored keys in sorted order.
func (c *ResourceCache[T]) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unload releases and removes the resource stored under key. Unloading a
// missing key only logs a warning, so double unloads are harmless.
func (c *ResourceCache[T]) Unload(key string) {
	v, ok := c.entries[key]
	if !ok {
		logger.Warn("tried to unload missing asset", "kind", c.kind, "key", key)
		return
	}
	delete(c.entries, key)
	c.release(v)
}

func (c *ResourceCache[T]) release(v T) {
	if c.loader.Unload != nil {
		c.loader.Unload(v)
	}
}

// Close unloads every remaining resource and marks the cache closed. Later
// loads fail with ErrCacheClosed. Close is idempotent.
func (c *ResourceCache[T]) Close() {
	for _, k := range c.Keys() {
		c.Unload(k)
	}
	c.closed = true
}

// KeyFromPath derives a cache key from a file path: the base name without its
// final extension. "tiles/grass.png" becomes "grass".
func KeyFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
