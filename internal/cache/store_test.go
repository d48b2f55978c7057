package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediadesk/internal/catalog"
)

func listQuery(page int) catalog.ListQuery {
	return catalog.ListQuery{Page: page, Limit: 20}
}

func TestSetListAndGetList(t *testing.T) {
	s := NewStore()
	q := listQuery(1)
	s.SetList("articles", q, []any{"a", "b"}, catalog.Paginate(2, 1, 20))

	entry, ok := s.GetList("articles", q.Key())
	require.True(t, ok)
	assert.Len(t, entry.Items, 2)
	assert.Equal(t, 2, entry.Pagination.Total)
	assert.True(t, s.Fresh(entry))

	_, ok = s.GetList("equipment", q.Key())
	assert.False(t, ok, "namespaces must not share entries")
}

func TestSetListErrorRetainsItems(t *testing.T) {
	s := NewStore()
	q := listQuery(1)
	s.SetList("articles", q, []any{"a", "b"}, catalog.Paginate(2, 1, 20))

	fetchErr := errors.New("backend down")
	s.SetListError("articles", q, fetchErr)

	entry, ok := s.GetList("articles", q.Key())
	require.True(t, ok)
	assert.Len(t, entry.Items, 2, "last-known-good items survive a failed refetch")
	assert.True(t, entry.IsError)
	assert.Equal(t, fetchErr, entry.Err)
	assert.False(t, s.Fresh(entry))
}

func TestSetListClearsErrorState(t *testing.T) {
	s := NewStore()
	q := listQuery(1)
	s.SetListError("articles", q, errors.New("boom"))
	s.SetList("articles", q, []any{"a"}, catalog.Paginate(1, 1, 20))

	entry, ok := s.GetList("articles", q.Key())
	require.True(t, ok)
	assert.False(t, entry.IsError)
	assert.NoError(t, entry.Err)
	assert.True(t, s.Fresh(entry))
}

func TestFreshHonorsTTL(t *testing.T) {
	s := NewStore(WithListTTL(time.Nanosecond))
	q := listQuery(1)
	s.SetList("articles", q, []any{"a"}, catalog.Paginate(1, 1, 20))

	time.Sleep(time.Millisecond)
	entry, ok := s.GetList("articles", q.Key())
	require.True(t, ok)
	assert.False(t, s.Fresh(entry))
}

func TestMarkStaleExcept(t *testing.T) {
	s := NewStore()
	q1, q2 := listQuery(1), listQuery(2)
	s.SetList("articles", q1, []any{"a"}, catalog.Paginate(2, 1, 20))
	s.SetList("articles", q2, []any{"b"}, catalog.Paginate(2, 2, 20))

	s.MarkStaleExcept("articles", []string{q1.Key()})

	kept, _ := s.GetList("articles", q1.Key())
	stale, _ := s.GetList("articles", q2.Key())
	assert.False(t, kept.Stale)
	assert.True(t, stale.Stale)
	assert.Len(t, stale.Items, 1, "stale entries keep their items")
}

func TestUpdateEntriesReportsTouchedKeys(t *testing.T) {
	s := NewStore()
	q1, q2 := listQuery(1), listQuery(2)
	s.SetList("articles", q1, []any{"a"}, catalog.Paginate(2, 1, 20))
	s.SetList("articles", q2, []any{"b"}, catalog.Paginate(2, 2, 20))

	touched := s.UpdateEntries("articles", func(key string, entry *ListEntry) bool {
		return key == q1.Key()
	})
	assert.Equal(t, []string{q1.Key()}, touched)
}

func TestByIDCacheNormalizesKeys(t *testing.T) {
	s := NewStore()
	s.SetByID("articles", 42, "the article")

	got, ok := s.GetByID("articles", "42")
	require.True(t, ok)
	assert.Equal(t, "the article", got)

	s.EvictByID("articles", catalog.ID("42"))
	_, ok = s.GetByID("articles", 42)
	assert.False(t, ok)
}

func TestGetListReturnsSnapshot(t *testing.T) {
	s := NewStore()
	q := listQuery(1)
	s.SetList("articles", q, []any{"a"}, catalog.Paginate(1, 1, 20))

	entry, ok := s.GetList("articles", q.Key())
	require.True(t, ok)
	entry.Items[0] = "mutated"

	again, _ := s.GetList("articles", q.Key())
	assert.Equal(t, "a", again.Items[0], "callers must not reach the shared slice")
}
