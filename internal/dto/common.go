package dto

// Paginacao is bound from ?page=&limit= on list endpoints.
type Paginacao struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=20" validate:"min=1,max=100"`
}

func (p Paginacao) Offset() int { return (p.Page - 1) * p.Limit }

// ListResponse is the envelope of every paginated list.
type ListResponse[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewListResponse[T any](data []T, total int64, p Paginacao) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return ListResponse[T]{Data: data, Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}
