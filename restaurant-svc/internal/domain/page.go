package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest clamps the requested page into a usable range.
func NewPageRequest(number, size int) PageRequest {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Number: number, Size: size}
}

func (p PageRequest) Offset() int { return p.Number * p.Size }

type PageMeta struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type Page[T any] struct {
	Items []T      `json:"items"`
	Page  PageMeta `json:"page"`
}

func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Items: items,
		Page: PageMeta{
			Number:        req.Number,
			Size:          req.Size,
			TotalElements: total,
			TotalPages:    pages,
		},
	}
}
