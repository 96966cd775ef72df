package pagination

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// PageRequest holds limit/offset parameters parsed from query strings.
type PageRequest struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Defaults fills in default values when limit is not provided.
func (p *PageRequest) Defaults() {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Meta describes one page of a listing. Total is supplied by the caller and
// is not required to match the filtered row count.
type Meta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Count  int   `json:"count"`
}

// PageResponse wraps a page of items with its metadata.
type PageResponse[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, req PageRequest, total int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data: data,
		Pagination: Meta{
			Total:  total,
			Limit:  req.Limit,
			Offset: req.Offset,
			Count:  len(data),
		},
	}
}
