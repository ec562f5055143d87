package mask

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/gnoswap-labs/inputmask/internal/compiler"
)

type cacheKey struct {
	pattern   string
	notations string
	rtl       bool
}

func (k cacheKey) String() string {
	dir := "ltr"
	if k.rtl {
		dir = "rtl"
	}
	return fmt.Sprintf("%s|%q|%q", dir, k.notations, k.pattern)
}

// CacheEntry is a compiled mask with bookkeeping.
type CacheEntry struct {
	Mask      *Mask
	CreatedAt time.Time
}

// Cache holds compiled masks keyed by pattern, direction and notation set.
// Entries are written once and never mutated. Notations are identified by
// their characters and optionality, so callers sharing one cache must not
// bind the same character to different classes.
type Cache struct {
	entries map[cacheKey]CacheEntry
	mutex   sync.RWMutex
	group   singleflight.Group
	logger  *zap.Logger
}

// NewCache returns an empty cache. A nil logger disables logging.
func NewCache(logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		entries: make(map[cacheKey]CacheEntry),
		logger:  logger,
	}
}

// Get returns the compiled left-to-right mask for pattern, compiling it on
// first use.
func (c *Cache) Get(pattern string, notations ...Notation) (*Mask, error) {
	return c.getOrCompile(pattern, false, notations)
}

// GetRTL is Get for right-to-left masks.
func (c *Cache) GetRTL(pattern string, notations ...Notation) (*Mask, error) {
	return c.getOrCompile(pattern, true, notations)
}

func (c *Cache) getOrCompile(pattern string, rtl bool, notations []Notation) (*Mask, error) {
	comp, err := compiler.New(notations...)
	if err != nil {
		return nil, err
	}
	key := cacheKey{pattern: pattern, notations: comp.Signature(), rtl: rtl}

	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()
	if ok {
		return entry.Mask, nil
	}

	v, err, shared := c.group.Do(key.String(), func() (interface{}, error) {
		c.mutex.RLock()
		entry, ok := c.entries[key]
		c.mutex.RUnlock()
		if ok {
			return entry.Mask, nil
		}

		m, err := compile(comp, pattern, rtl)
		if err != nil {
			return nil, err
		}

		c.mutex.Lock()
		c.entries[key] = CacheEntry{Mask: m, CreatedAt: time.Now()}
		c.mutex.Unlock()

		c.logger.Debug("compiled mask", zap.String("pattern", pattern), zap.Bool("rtl", rtl))
		return m, nil
	})
	if err != nil {
		c.logger.Debug("failed to compile mask", zap.String("pattern", pattern), zap.Error(err))
		return nil, fmt.Errorf("failed to compile %q: %w", pattern, err)
	}
	if shared {
		c.logger.Debug("shared mask compilation", zap.String("pattern", pattern))
	}

	return v.(*Mask), nil
}

// Len returns the number of cached masks.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// Entries returns a snapshot of the cached masks.
func (c *Cache) Entries() []CacheEntry {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entries := make([]CacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	return entries
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[cacheKey]CacheEntry)
}
