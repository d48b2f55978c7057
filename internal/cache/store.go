// Package cache implements the client-side query cache behind the resource
// synchronizer: collection entries keyed by canonical list-query keys and a
// bounded by-ID cache, both scoped per resource namespace.
//
// The store is an injected service, never a package global. Reconciliation
// writes only ever touch the namespace of the resource being mutated.
package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"mediadesk/internal/catalog"
	"mediadesk/internal/logging"
	"mediadesk/internal/observability"
)

const (
	defaultByIDSize = 256
	defaultListTTL  = 5 * time.Minute
)

// ListEntry is the cached result of one paginated list query. Items hold the
// entities as `any`; the typed synchronizer owns their concrete type.
//
// A failed refetch keeps Items and sets Err/IsError (stale-while-revalidate);
// Stale marks an entry that must refetch on next access but may still be
// displayed meanwhile.
type ListEntry struct {
	Query      catalog.ListQuery
	Items      []any
	Pagination catalog.Pagination
	Err        error
	IsError    bool
	Stale      bool
	StoredAt   time.Time
}

// Store is the shared query cache.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	byIDSize int
	lists    map[string]map[string]*ListEntry
	byID     map[string]*lru.Cache[string, any]
	metrics  *observability.Metrics
	logger   logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithListTTL bounds how long a collection entry stays fresh. Zero disables
// time-based expiry (entries only go stale through invalidation).
func WithListTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithByIDSize sets the per-namespace by-ID LRU capacity.
func WithByIDSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.byIDSize = size
		}
	}
}

// WithMetrics attaches hit/miss counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithLogger attaches a logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an empty query cache.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ttl:      defaultListTTL,
		byIDSize: defaultByIDSize,
		lists:    make(map[string]map[string]*ListEntry),
		byID:     make(map[string]*lru.Cache[string, any]),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)
	return s
}

// SetList stores a confirmed page for the query, clearing any error or
// stale flag left by earlier failures.
func (s *Store) SetList(ns string, q catalog.ListQuery, items []any, p catalog.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.lists[ns]
	if table == nil {
		table = make(map[string]*ListEntry)
		s.lists[ns] = table
	}
	table[q.Key()] = &ListEntry{
		Query:      q,
		Items:      items,
		Pagination: p,
		StoredAt:   time.Now(),
	}
}

// SetListError records a fetch failure. The previously stored items are
// retained so the last-known-good page stays visible.
func (s *Store) SetListError(ns string, q catalog.ListQuery, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.lists[ns]
	if table == nil {
		table = make(map[string]*ListEntry)
		s.lists[ns] = table
	}
	entry, ok := table[q.Key()]
	if !ok {
		entry = &ListEntry{Query: q, StoredAt: time.Now()}
		table[q.Key()] = entry
	}
	entry.Err = err
	entry.IsError = true
}

// GetList returns a snapshot of the entry for the key, when present.
func (s *Store) GetList(ns, key string) (ListEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.lists[ns][key]
	if !ok {
		s.metrics.CacheMiss()
		return ListEntry{}, false
	}
	s.metrics.CacheHit()
	return snapshot(entry), true
}

// Fresh reports whether a snapshot can be served without refetching.
func (s *Store) Fresh(entry ListEntry) bool {
	if entry.Stale || entry.IsError {
		return false
	}
	if s.ttl > 0 && time.Since(entry.StoredAt) > s.ttl {
		return false
	}
	return true
}

// UpdateEntries runs fn over every collection entry in the namespace under
// the write lock. fn mutates the entry in place and reports whether it
// touched it; the touched keys are returned so untouched views can be
// invalidated afterwards.
func (s *Store) UpdateEntries(ns string, fn func(key string, entry *ListEntry) bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var touched []string
	for key, entry := range s.lists[ns] {
		if fn(key, entry) {
			touched = append(touched, key)
		}
	}
	return touched
}

// MarkStaleExcept flags every entry in the namespace except the listed keys,
// so views the reconciliation could not patch refetch lazily on next access.
func (s *Store) MarkStaleExcept(ns string, keep []string) {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.lists[ns] {
		if !kept[key] {
			entry.Stale = true
		}
	}
}

// InvalidateNamespace marks every collection entry in the namespace stale.
// Entries are kept, not dropped: stale data stays on screen until replaced.
func (s *Store) InvalidateNamespace(ns string) {
	s.MarkStaleExcept(ns, nil)
}

// ListKeys returns the cached collection keys for a namespace.
func (s *Store) ListKeys(ns string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.lists[ns]))
	for key := range s.lists[ns] {
		keys = append(keys, key)
	}
	return keys
}

// GetByID reads the single-entity cache.
func (s *Store) GetByID(ns string, id any) (any, bool) {
	s.mu.RLock()
	cache := s.byID[ns]
	s.mu.RUnlock()
	if cache == nil {
		s.metrics.CacheMiss()
		return nil, false
	}
	v, ok := cache.Get(catalog.NormalizeID(id))
	if ok {
		s.metrics.CacheHit()
	} else {
		s.metrics.CacheMiss()
	}
	return v, ok
}

// SetByID writes the single-entity cache (write-through after mutations).
func (s *Store) SetByID(ns string, id any, value any) {
	s.idCache(ns).Add(catalog.NormalizeID(id), value)
}

// EvictByID drops a single-entity entry after a delete.
func (s *Store) EvictByID(ns string, id any) {
	s.mu.RLock()
	cache := s.byID[ns]
	s.mu.RUnlock()
	if cache != nil {
		cache.Remove(catalog.NormalizeID(id))
	}
}

func (s *Store) idCache(ns string) *lru.Cache[string, any] {
	s.mu.Lock()
	defer s.mu.Unlock()
	cache := s.byID[ns]
	if cache == nil {
		var err error
		cache, err = lru.New[string, any](s.byIDSize)
		if err != nil {
			// lru.New only errors on non-positive size which we guard in options.
			cache, _ = lru.New[string, any](defaultByIDSize)
		}
		s.byID[ns] = cache
	}
	return cache
}

func snapshot(entry *ListEntry) ListEntry {
	copied := *entry
	copied.Items = make([]any, len(entry.Items))
	copy(copied.Items, entry.Items)
	return copied
}
