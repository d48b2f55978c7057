package catalog

// Pagination describes one page of a list response.
type Pagination struct {
	Total       int  `json:"total"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Paginate computes pagination metadata for a page of a list of total items.
func Paginate(total, page, limit int) Pagination {
	if total < 0 {
		total = 0
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:       total,
		CurrentPage: page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}
}

// WithTotal recomputes the derived fields after the total changed (e.g. a
// delete reconciliation). Total never drops below zero.
func (p Pagination) WithTotal(total int) Pagination {
	return Paginate(total, p.CurrentPage, p.PageSize)
}

// Page is one cached or fetched page of entities.
type Page[E any] struct {
	Items      []E        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
