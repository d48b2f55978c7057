package resource

import (
	"context"
	"encoding/json"
	"sync"

	"mediadesk/internal/cache"
	"mediadesk/internal/catalog"
	"mediadesk/internal/logging"
	"mediadesk/internal/observability"
)

// ListResult is what a list view renders: the page items plus the error and
// staleness flags. After a failed refetch the last-known-good items are still
// present with IsError set, so the previous page stays on screen.
type ListResult[E any] struct {
	Items      []E
	Pagination catalog.Pagination
	Stale      bool
	IsError    bool
	Err        error
}

// Synchronizer wraps the remote service for one resource namespace and keeps
// the shared query cache consistent after every mutation.
//
// Reconciliation is never speculative: only confirmed server responses drive
// cache writes, collection caches are written before the by-ID cache, and
// both writes complete before the mutation settles.
type Synchronizer[E Identifiable] struct {
	ns      string
	svc     Service[E]
	store   *cache.Store
	logger  logging.Logger
	metrics *observability.Metrics

	mu       sync.Mutex
	inflight map[string]*inflightFetch
}

// inflightFetch tracks a fetch that a newer fetch for the same key may cancel.
type inflightFetch struct {
	cancel context.CancelFunc
}

// Option configures a Synchronizer.
type Option[E Identifiable] func(*Synchronizer[E])

// WithLogger attaches a logger.
func WithLogger[E Identifiable](logger logging.Logger) Option[E] {
	return func(s *Synchronizer[E]) { s.logger = logger }
}

// WithMetrics attaches mutation/reconciliation counters.
func WithMetrics[E Identifiable](m *observability.Metrics) Option[E] {
	return func(s *Synchronizer[E]) { s.metrics = m }
}

// New builds a Synchronizer for the namespace. The store is shared across
// resource types; this synchronizer only ever writes keys it owns.
func New[E Identifiable](ns string, svc Service[E], store *cache.Store, opts ...Option[E]) *Synchronizer[E] {
	s := &Synchronizer[E]{
		ns:       ns,
		svc:      svc,
		store:    store,
		logger:   logging.Nop(),
		inflight: make(map[string]*inflightFetch),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)
	return s
}

// Namespace returns the resource namespace this synchronizer owns.
func (s *Synchronizer[E]) Namespace() string { return s.ns }

// List serves a page from the cache when fresh, otherwise fetches it. A new
// fetch for a query key supersedes any in-flight fetch for the same key by
// cancelling its context (the debounced-search discipline). On failure the
// previously displayed page is retained and IsError is set.
func (s *Synchronizer[E]) List(ctx context.Context, q catalog.ListQuery) (*ListResult[E], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	key := q.Key()

	if entry, ok := s.store.GetList(s.ns, key); ok && s.store.Fresh(entry) {
		return s.resultFromEntry(entry), nil
	}

	fetchCtx, token := s.supersede(ctx, key)
	page, err := s.svc.List(fetchCtx, q)
	s.clearInflight(key, token)

	if err != nil {
		s.store.SetListError(s.ns, q, err)
		s.logger.Warn("list %s %q failed: %v", s.ns, key, err)
		if entry, ok := s.store.GetList(s.ns, key); ok {
			result := s.resultFromEntry(entry)
			return result, err
		}
		return &ListResult[E]{IsError: true, Err: err}, err
	}

	items := make([]any, len(page.Items))
	for i := range page.Items {
		items[i] = page.Items[i]
	}
	s.store.SetList(s.ns, q, items, page.Pagination)
	return &ListResult[E]{Items: page.Items, Pagination: page.Pagination}, nil
}

// GetByID reads through the single-entity cache.
func (s *Synchronizer[E]) GetByID(ctx context.Context, id any) (*E, error) {
	normalized := catalog.NormalizeID(id)
	if cached, ok := s.store.GetByID(s.ns, normalized); ok {
		if entity, ok := cached.(E); ok {
			return &entity, nil
		}
	}
	entity, err := s.svc.Get(ctx, normalized)
	if err != nil {
		return nil, err
	}
	s.store.SetByID(s.ns, normalized, *entity)
	return entity, nil
}

// Create sends the payload and, on success, prepends the new entity to the
// canonical first page, seeds the by-ID cache, and invalidates every other
// cached view of the namespace. On failure the cache is untouched.
func (s *Synchronizer[E]) Create(ctx context.Context, payload map[string]any) (*Mutation[E], error) {
	m := newMutation[E](MutationCreate, "")
	entity, err := s.svc.Create(ctx, payload)
	if err != nil {
		s.metrics.Mutation(string(MutationCreate), "error")
		return m.fail(err), err
	}
	m.TargetID = (*entity).EntityID()

	s.reconcileCreate(*entity)
	s.metrics.Mutation(string(MutationCreate), "success")
	return m.succeed(entity), nil
}

// Update sends only the changed fields (see DiffFields) and, on success,
// shallow-merges the server response into every cached row with the same ID
// and the by-ID entry. On failure the cache is untouched.
func (s *Synchronizer[E]) Update(ctx context.Context, id any, partial map[string]any) (*Mutation[E], error) {
	normalized := catalog.NormalizeID(id)
	m := newMutation[E](MutationUpdate, normalized)
	entity, raw, err := s.svc.Update(ctx, normalized, partial)
	if err != nil {
		s.metrics.Mutation(string(MutationUpdate), "error")
		return m.fail(err), err
	}

	merged := s.reconcileUpdate(*entity, raw)
	s.metrics.Mutation(string(MutationUpdate), "success")
	return m.succeed(&merged), nil
}

// UpdateStatus runs the status workflow mutation with update-shaped
// reconciliation.
func (s *Synchronizer[E]) UpdateStatus(ctx context.Context, id any, status catalog.Status) (*Mutation[E], error) {
	normalized := catalog.NormalizeID(id)
	m := newMutation[E](MutationStatusUpdate, normalized)
	entity, raw, err := s.svc.UpdateStatus(ctx, normalized, status)
	if err != nil {
		s.metrics.Mutation(string(MutationStatusUpdate), "error")
		return m.fail(err), err
	}

	merged := s.reconcileUpdate(*entity, raw)
	s.metrics.Mutation(string(MutationStatusUpdate), "success")
	return m.succeed(&merged), nil
}

// Delete removes the entity remotely and, on success, removes it from every
// cached page (decrementing that page's total, floored at zero) and evicts
// the by-ID entry. On failure the cache is untouched.
func (s *Synchronizer[E]) Delete(ctx context.Context, id any) (*Mutation[E], error) {
	normalized := catalog.NormalizeID(id)
	m := newMutation[E](MutationDelete, normalized)
	if err := s.svc.Delete(ctx, normalized); err != nil {
		s.metrics.Mutation(string(MutationDelete), "error")
		return m.fail(err), err
	}

	s.reconcileDelete(normalized)
	s.metrics.Mutation(string(MutationDelete), "success")
	return m.succeed(nil), nil
}

// BulkOperation applies delete- or update-shaped reconciliation per affected
// ID, then invalidates the whole namespace so counts settle on next access.
func (s *Synchronizer[E]) BulkOperation(ctx context.Context, op BulkOp) (*Mutation[E], error) {
	m := newMutation[E](MutationBulkOp, "")
	result, err := s.svc.BulkOperation(ctx, op)
	if err != nil {
		s.metrics.Mutation(string(MutationBulkOp), "error")
		return m.fail(err), err
	}

	for _, id := range result.Deleted {
		s.reconcileDelete(catalog.NormalizeID(id))
	}
	for _, entity := range result.Updated {
		s.reconcileUpdate(entity, nil)
	}
	s.store.InvalidateNamespace(s.ns)
	s.metrics.Mutation(string(MutationBulkOp), "success")
	return m.succeed(nil), nil
}

// Refetch drops freshness for the namespace so every view reloads lazily.
func (s *Synchronizer[E]) Refetch() {
	s.store.InvalidateNamespace(s.ns)
}

// --- reconciliation ---

func (s *Synchronizer[E]) reconcileCreate(entity E) {
	touched := s.store.UpdateEntries(s.ns, func(key string, entry *cache.ListEntry) bool {
		if !entry.Query.IsDefaultFirstPage() {
			return false
		}
		entry.Items = append([]any{entity}, entry.Items...)
		if limit := entry.Query.Limit; limit > 0 && len(entry.Items) > limit {
			entry.Items = entry.Items[:limit]
		}
		entry.Pagination = entry.Pagination.WithTotal(entry.Pagination.Total + 1)
		return true
	})
	// Views the prepend could not reach refetch lazily on next access.
	s.store.MarkStaleExcept(s.ns, touched)
	s.store.SetByID(s.ns, entity.EntityID(), entity)
	s.metrics.Reconciliation(string(MutationCreate))
}

// reconcileUpdate patches every cached row with a matching ID in place and
// returns the merged entity written to the by-ID cache.
func (s *Synchronizer[E]) reconcileUpdate(entity E, raw json.RawMessage) E {
	id := entity.EntityID()
	merged := entity

	touched := s.store.UpdateEntries(s.ns, func(key string, entry *cache.ListEntry) bool {
		found := false
		for i, item := range entry.Items {
			if !catalog.SameID(itemID(item), id) {
				continue
			}
			next := mergeEntity(item, entity, raw)
			entry.Items[i] = next
			merged = next
			found = true
		}
		return found
	})
	s.store.MarkStaleExcept(s.ns, touched)

	// By-ID cache second, per the settle order: collection, then by-ID.
	if cached, ok := s.store.GetByID(s.ns, id); ok {
		merged = mergeEntity(cached, entity, raw)
	}
	s.store.SetByID(s.ns, id, merged)
	s.metrics.Reconciliation(string(MutationUpdate))
	return merged
}

func (s *Synchronizer[E]) reconcileDelete(id string) {
	touched := s.store.UpdateEntries(s.ns, func(key string, entry *cache.ListEntry) bool {
		kept := entry.Items[:0]
		removed := 0
		for _, item := range entry.Items {
			if catalog.SameID(itemID(item), id) {
				removed++
				continue
			}
			kept = append(kept, item)
		}
		if removed == 0 {
			return false
		}
		entry.Items = kept
		total := entry.Pagination.Total - removed
		if total < 0 {
			total = 0
		}
		entry.Pagination = entry.Pagination.WithTotal(total)
		return true
	})
	s.store.MarkStaleExcept(s.ns, touched)
	s.store.EvictByID(s.ns, id)
	s.metrics.Reconciliation(string(MutationDelete))
}

// --- fetch supersession ---

func (s *Synchronizer[E]) supersede(ctx context.Context, key string) (context.Context, *inflightFetch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev := s.inflight[key]; prev != nil {
		prev.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	token := &inflightFetch{cancel: cancel}
	s.inflight[key] = token
	return fetchCtx, token
}

func (s *Synchronizer[E]) clearInflight(key string, token *inflightFetch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Only clear our own registration; a superseding fetch may own the key now.
	if s.inflight[key] == token {
		delete(s.inflight, key)
	}
	token.cancel()
}

func (s *Synchronizer[E]) resultFromEntry(entry cache.ListEntry) *ListResult[E] {
	items := make([]E, 0, len(entry.Items))
	for _, item := range entry.Items {
		if entity, ok := item.(E); ok {
			items = append(items, entity)
		}
	}
	return &ListResult[E]{
		Items:      items,
		Pagination: entry.Pagination,
		Stale:      entry.Stale,
		IsError:    entry.IsError,
		Err:        entry.Err,
	}
}

func itemID(item any) string {
	switch v := item.(type) {
	case Identifiable:
		return v.EntityID()
	case map[string]any:
		return catalog.NormalizeID(v["id"])
	default:
		return catalog.NormalizeID(item)
	}
}
