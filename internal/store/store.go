// Package store is the in-memory catalog backing the dashboard server in
// development and tests. Rows are generic field maps so one implementation
// serves every resource namespace.
package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"mediadesk/internal/catalog"
	mderrors "mediadesk/internal/errors"
	"mediadesk/internal/resource"
)

// Row is one stored entity as a field map. IDs are stored as int64 so the
// wire carries JSON numbers, exercising the string-coerced identity rule on
// the client side.
type Row map[string]any

// ListResult is one page of rows.
type ListResult struct {
	Items      []Row
	Pagination catalog.Pagination
}

// Store holds every resource table behind one RWMutex.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]Row
	nextID map[string]int64
	now    func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		tables: make(map[string][]Row),
		nextID: make(map[string]int64),
		now:    time.Now,
	}
}

// List returns one filtered, sorted page of a namespace. Rows are matched
// case-insensitively against the search term across string fields, filters
// compare stringified equality, and the default order is newest first.
func (s *Store) List(ns string, q catalog.ListQuery) (*ListResult, error) {
	if err := q.Validate(); err != nil {
		return nil, &mderrors.ValidationError{Message: err.Error()}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Row, 0, len(s.tables[ns]))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, row := range s.tables[ns] {
		if search != "" && !rowMatches(row, search) {
			continue
		}
		if !rowPassesFilters(row, q.Filters) {
			continue
		}
		matched = append(matched, row)
	}

	sortRows(matched, q.SortBy, q.Order)

	total := len(matched)
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	items := make([]Row, end-start)
	for i, row := range matched[start:end] {
		items[i] = cloneRow(row)
	}
	return &ListResult{Items: items, Pagination: catalog.Paginate(total, q.Page, q.Limit)}, nil
}

// Get returns one row by ID.
func (s *Store) Get(ns string, id any) (Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, _, err := s.findLocked(ns, id)
	if err != nil {
		return nil, err
	}
	return cloneRow(row), nil
}

// Create inserts a row, assigning the ID and timestamps.
func (s *Store) Create(ns string, payload map[string]any) (Row, error) {
	if len(payload) == 0 {
		return nil, &mderrors.ValidationError{Message: "empty payload"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID[ns]++
	now := s.now().UTC()
	row := Row{}
	for k, v := range payload {
		row[k] = v
	}
	row["id"] = s.nextID[ns]
	if _, ok := row["status"]; !ok {
		row["status"] = string(catalog.StatusDraft)
	}
	row["createdAt"] = now
	row["updatedAt"] = now

	s.tables[ns] = append(s.tables[ns], row)
	return cloneRow(row), nil
}

// Update shallow-merges the partial payload into the row.
func (s *Store) Update(ns string, id any, payload map[string]any) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, _, err := s.findLocked(ns, id)
	if err != nil {
		return nil, err
	}
	for k, v := range payload {
		if k == "id" || k == "createdAt" {
			continue
		}
		row[k] = v
	}
	row["updatedAt"] = s.now().UTC()
	return cloneRow(row), nil
}

// UpdateStatus runs the workflow transition for one row.
func (s *Store) UpdateStatus(ns string, id any, next catalog.Status) (Row, error) {
	if !next.Valid() {
		return nil, &mderrors.ValidationError{Message: fmt.Sprintf("unknown status %q", next)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, _, err := s.findLocked(ns, id)
	if err != nil {
		return nil, err
	}
	current := catalog.Status(asString(row["status"]))
	if !current.CanTransition(next) {
		return nil, &mderrors.ValidationError{
			Message: fmt.Sprintf("cannot transition %s from %s to %s", ns, current, next),
		}
	}
	row["status"] = string(next)
	if next == catalog.StatusPublished {
		row["publishedAt"] = s.now().UTC()
	}
	row["updatedAt"] = s.now().UTC()
	return cloneRow(row), nil
}

// Delete removes a row.
func (s *Store) Delete(ns string, id any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, err := s.findLocked(ns, id)
	if err != nil {
		return err
	}
	s.tables[ns] = append(s.tables[ns][:idx], s.tables[ns][idx+1:]...)
	return nil
}

// Bulk applies a bulk action. Delete removes every listed row; publish and
// archive run the workflow transition, skipping rows the workflow forbids.
func (s *Store) Bulk(ns string, op resource.BulkOp) (deleted []string, updated []Row, err error) {
	switch op.Action {
	case resource.BulkDelete:
		for _, id := range op.IDs {
			if err := s.Delete(ns, id); err == nil {
				deleted = append(deleted, catalog.NormalizeID(id))
			}
		}
		return deleted, nil, nil
	case resource.BulkPublish, resource.BulkArchive:
		next := catalog.StatusPublished
		if op.Action == resource.BulkArchive {
			next = catalog.StatusArchived
		}
		for _, id := range op.IDs {
			row, err := s.UpdateStatus(ns, id, next)
			if err != nil {
				continue
			}
			updated = append(updated, row)
		}
		return nil, updated, nil
	default:
		return nil, nil, &mderrors.ValidationError{Message: fmt.Sprintf("unknown bulk action %q", op.Action)}
	}
}

// Count returns the number of rows in a namespace.
func (s *Store) Count(ns string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[ns])
}

func (s *Store) findLocked(ns string, id any) (Row, int, error) {
	want := catalog.NormalizeID(id)
	for i, row := range s.tables[ns] {
		if catalog.SameID(row["id"], want) {
			return row, i, nil
		}
	}
	return nil, -1, &mderrors.NotFoundError{Resource: ns, ID: want}
}

func rowMatches(row Row, search string) bool {
	for _, v := range row {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}

func rowPassesFilters(row Row, filters map[string]string) bool {
	for field, want := range filters {
		if asString(row[field]) != want {
			return false
		}
	}
	return true
}

func sortRows(rows []Row, sortBy, order string) {
	if sortBy == "" {
		// Newest first: IDs are assigned sequentially.
		sort.SliceStable(rows, func(i, j int) bool {
			return asInt(rows[i]["id"]) > asInt(rows[j]["id"])
		})
		return
	}
	desc := order == "desc"
	sort.SliceStable(rows, func(i, j int) bool {
		less := compareValues(rows[i][sortBy], rows[j][sortBy])
		if desc {
			return less > 0
		}
		return less < 0
	})
}

func compareValues(a, b any) int {
	ai, aok := toFloat(a)
	bi, bok := toFloat(b)
	if aok && bok {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(asString(a), asString(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		parsed, _ := strconv.ParseInt(n, 10, 64)
		return parsed
	default:
		return 0
	}
}

func cloneRow(row Row) Row {
	copied := make(Row, len(row))
	for k, v := range row {
		copied[k] = v
	}
	return copied
}
