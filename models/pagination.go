package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest is the page/limit pair parsed from the query string.
type PageRequest struct {
	Page  int64
	Limit int64
}

// Normalize replaces non-positive values with the defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p PageRequest) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// Pagination is returned next to list data.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(total int64, p PageRequest) Pagination {
	p = p.Normalize()
	return Pagination{
		Total: total,
		Page:  p.Page,
		Pages: (total + p.Limit - 1) / p.Limit,
	}
}
