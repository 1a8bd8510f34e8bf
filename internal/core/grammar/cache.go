package grammar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/kv"
	"github.com/baditaflorin/go_text_normalization/internal/ports"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

// Version is part of every cache key. Bump it whenever a grammar changes its
// output so stale artifacts are never loaded.
const Version = "1"

// Cache keeps compiled transducers in a kv.Store so later runs skip
// compilation. A nil *Cache compiles every time.
type Cache struct {
	store  kv.Store
	logger ports.Logger
}

// NewCache returns a cache over store. logger may be nil.
func NewCache(store kv.Store, logger ports.Logger) *Cache {
	return &Cache{store: store, logger: logger}
}

// Key returns the store key for a grammar.
func Key(name string, deterministic bool) kv.Key {
	mode := "det"
	if !deterministic {
		mode = "nondet"
	}
	return kv.Key{"grammar", name, mode, Version}
}

// Load returns the cached transducer for (name, deterministic), compiling and
// storing it on a miss. Unreadable entries are recompiled and overwritten.
func (c *Cache) Load(ctx context.Context, name string, deterministic bool, compile func() (*fst.Fst, error)) (*fst.Fst, error) {
	if c == nil {
		return compile()
	}
	key := Key(name, deterministic)
	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		f, derr := fst.Decode(data)
		if derr == nil {
			c.debug("Loaded compiled grammar", "key", key.String(), "states", f.NumStates())
			return f, nil
		}
		c.warn("Discarding unreadable cached grammar", "key", key.String(), "error", derr)
	case !errors.Is(err, kv.ErrNotFound):
		return nil, fmt.Errorf("grammar cache get %s: %w", key, err)
	}

	start := time.Now()
	f, err := compile()
	if err != nil {
		return nil, err
	}
	data, err = f.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("grammar cache encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		return nil, fmt.Errorf("grammar cache set %s: %w", key, err)
	}
	c.debug("Compiled and cached grammar",
		"key", key.String(),
		"states", f.NumStates(),
		"arcs", f.NumArcs(),
		"bytes", len(data),
		"duration", time.Since(start),
	)
	return f, nil
}

// Entry describes one cached grammar.
type Entry struct {
	Key   string
	Bytes int
}

// Entries lists the cached grammars.
func (c *Cache) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	for e, err := range c.store.List(ctx, kv.Key{"grammar"}) {
		if err != nil {
			return nil, fmt.Errorf("grammar cache list: %w", err)
		}
		entries = append(entries, Entry{Key: e.Key.String(), Bytes: len(e.Value)})
	}
	return entries, nil
}

func (c *Cache) debug(msg string, keysAndValues ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, keysAndValues...)
	}
}

func (c *Cache) warn(msg string, keysAndValues ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, keysAndValues...)
	}
}
