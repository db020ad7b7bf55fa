package models

type PaginationQuery struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

type PaginationResult struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationResult builds a pagination result for a total row count
func NewPaginationResult(total int64, page, pageSize int) PaginationResult {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return PaginationResult{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Normalize clamps the page number and page size to sane bounds
func (q *PaginationQuery) Normalize(defaultPageSize int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if defaultPageSize < 1 || defaultPageSize > 100 {
		defaultPageSize = 20
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = defaultPageSize
	}
}

// Offset returns the row offset for the current page
func (q PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
