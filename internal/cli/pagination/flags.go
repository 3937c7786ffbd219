package pagination

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Defaults and bounds.
const (
	MaxLimit         = 10000
	MaxPageSize      = 1000
	DefaultSortOrder = SortOrderAsc
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"

	sortPartsMax = 2
)

// Validation errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'growth:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds paging flags. Zero values disable the corresponding option.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
}

// Validate checks bounds and that only one paging mode is in use.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0 || p.Offset < 0 || p.Page < 0 || p.PageSize < 0:
		return errors.New("limit, offset, page and page-size cannot be negative")
	case p.Limit > MaxLimit:
		return fmt.Errorf("limit must be <= %d", MaxLimit)
	case p.PageSize > MaxPageSize:
		return fmt.Errorf("page-size must be <= %d", MaxPageSize)
	case p.Page > 0 && (p.Offset > 0 || p.Limit > 0):
		return errors.New("page and offset/limit parameters are mutually exclusive")
	case p.Page == 0 && p.PageSize > 0:
		return errors.New("page must be specified when using page-size")
	case p.Page > 0 && p.PageSize == 0:
		return errors.New("page-size must be specified when using page")
	}
	return nil
}

func (p Params) window() (int, int) {
	if p.Page > 0 {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Meta describes the page returned by Apply.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
}

// Apply returns the requested window of items and its metadata. A limit of
// zero means "everything after the offset".
func Apply[T any](items []T, p Params) ([]T, Meta) {
	offset, limit := p.window()
	total := len(items)

	start := min(offset, total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}

	size := limit
	if size == 0 {
		size = max(total-start, 1)
	}
	meta := Meta{
		CurrentPage: start/size + 1,
		PageSize:    size,
		TotalPages:  int(math.Ceil(float64(total) / float64(size))),
		TotalItems:  total,
	}
	meta.HasNext = end < total
	return items[start:end], meta
}

// ParseSort parses "field" or "field:order". An empty expression yields
// an empty field, meaning "keep the natural order".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(expr string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", DefaultSortOrder, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field = strings.ToLower(strings.TrimSpace(parts[0]))
	order = DefaultSortOrder
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// ValidateField returns ErrInvalidSortField unless field is empty or one
// of valid.
func ValidateField(field string, valid []string) error {
	if field == "" {
		return nil
	}
	for _, v := range valid {
		if v == field {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(valid, ", "))
}
