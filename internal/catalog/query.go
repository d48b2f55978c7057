package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Resource namespaces. Cache keys, REST paths, and metric labels all use
// these names; reconciliation writes never cross a namespace boundary.
const (
	ResourceArticles       = "articles"
	ResourceEquipment      = "equipment"
	ResourceFacilities     = "facilities"
	ResourceBroadcastUnits = "broadcast-units"
	ResourceServices       = "services"
	ResourceSolutions      = "solutions"
	ResourceStaff          = "staff"
	ResourceSettings       = "settings"
)

// Resources lists every known namespace in a stable order.
func Resources() []string {
	return []string{
		ResourceArticles,
		ResourceEquipment,
		ResourceFacilities,
		ResourceBroadcastUnits,
		ResourceServices,
		ResourceSolutions,
		ResourceStaff,
		ResourceSettings,
	}
}

// KnownResource reports whether ns names a managed resource type.
func KnownResource(ns string) bool {
	for _, r := range Resources() {
		if r == ns {
			return true
		}
	}
	return false
}

// ListQuery identifies one page of one filtered view of a resource list.
// Its canonical Key is the collection-cache key.
type ListQuery struct {
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	SortBy  string            `json:"sortBy,omitempty"`
	Order   string            `json:"order,omitempty"`
	Locale  string            `json:"locale,omitempty"`
}

// Validate enforces page >= 1 and limit > 0.
func (q ListQuery) Validate() error {
	if q.Page < 1 {
		return fmt.Errorf("list query: page must be >= 1, got %d", q.Page)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("list query: limit must be > 0, got %d", q.Limit)
	}
	if q.Order != "" && q.Order != "asc" && q.Order != "desc" {
		return fmt.Errorf("list query: order must be asc or desc, got %q", q.Order)
	}
	return nil
}

// Key returns the canonical deterministic cache key for this query. Filter
// keys are sorted so two equal queries always produce the same key.
func (q ListQuery) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "page=%d&limit=%d", q.Page, q.Limit)
	if q.Search != "" {
		fmt.Fprintf(&b, "&search=%s", q.Search)
	}
	if len(q.Filters) > 0 {
		keys := make([]string, 0, len(q.Filters))
		for k := range q.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "&filter[%s]=%s", k, q.Filters[k])
		}
	}
	if q.SortBy != "" {
		fmt.Fprintf(&b, "&sort=%s&order=%s", q.SortBy, q.Order)
	}
	if q.Locale != "" {
		fmt.Fprintf(&b, "&locale=%s", q.Locale)
	}
	return b.String()
}

// IsDefaultFirstPage reports whether this query addresses the canonical
// "first/most recent" page: page 1, no search, no filters, default sort.
// Created entities are prepended only to this page; every other cached view
// is invalidated instead.
func (q ListQuery) IsDefaultFirstPage() bool {
	return q.Page == 1 && q.Search == "" && len(q.Filters) == 0 && q.SortBy == ""
}
