package models

import "strings"

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Sort orders a listing by one document field.
type Sort struct {
	Field string
	Desc  bool
}

func (s Sort) String() string {
	if s.Desc {
		return s.Field + ",desc"
	}
	return s.Field + ",asc"
}

// ParseSort reads "field" or "field,asc|desc". The field must be present in
// allowed; an empty input falls back to def.
func ParseSort(raw string, def Sort, allowed map[string]bool) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	field, dir, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if !allowed[field] {
		return Sort{}, Invalidf("cannot sort by %q", field)
	}
	s := Sort{Field: field, Desc: def.Desc}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "":
	case "asc":
		s.Desc = false
	case "desc":
		s.Desc = true
	default:
		return Sort{}, Invalidf("invalid sort direction %q", dir)
	}
	return s, nil
}

// PageRequest is a zero-based page index, a page size and an ordering.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return Invalidf("page must not be negative")
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return Invalidf("size must be between 1 and %d", MaxPageSize)
	}
	return nil
}

func (p PageRequest) Skip() int64 {
	return int64(p.Page) * int64(p.Size)
}

// Page is one slice of a listing plus the totals needed to walk the rest.
type Page[T any] struct {
	Content       []T    `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Sort          string `json:"sort"`
}

// NewPage assembles a page; content is never serialised as null.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
		Sort:          req.Sort.String(),
	}
}
