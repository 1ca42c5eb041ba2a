package domain

import "github.com/google/uuid"

// PageRequest selects one page of a query. Page is 1-based.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// PagedResult holds one page of items and the total matching across all pages.
type PagedResult[T any] struct {
	Items      []T
	TotalCount int
}

// TotalPages returns ceil(totalItems / itemsPerPage).
// Zero items, or a non-positive page size, yield zero pages.
func TotalPages(totalItems, itemsPerPage int) int {
	if totalItems <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// PagingInfo describes the position of a page within a result set.
type PagingInfo struct {
	TotalItems   int
	ItemsPerPage int
	CurrentPage  int
}

// TotalPages returns the page count of the result set.
func (p PagingInfo) TotalPages() int {
	return TotalPages(p.TotalItems, p.ItemsPerPage)
}

// NewPagingInfo builds PagingInfo for req over total matching items.
func NewPagingInfo(req PageRequest, total int) PagingInfo {
	return PagingInfo{
		TotalItems:   total,
		ItemsPerPage: req.Size,
		CurrentPage:  req.Page,
	}
}

// ListPage is a page of lists owned by one account.
type ListPage struct {
	Lists  []TodoList
	Paging PagingInfo
}

// EntryPage is a page of entries. HideCompleted records whether completed
// entries were removed from Entries after the page was fetched.
type EntryPage struct {
	Entries       []TodoEntry
	Paging        PagingInfo
	HideCompleted bool
}

// NotePage is a page of notes attached to one entry.
type NotePage struct {
	EntryID uuid.UUID
	Notes   []Note
	Paging  PagingInfo
}
