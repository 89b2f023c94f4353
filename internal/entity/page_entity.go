package entity

const MaxPageLimit = 100

type PageRequest struct {
	Page  int
	Limit int
}

// Normalize defaults page to 1 and limit to defaultLimit, clamping limit to MaxPageLimit.
func (p PageRequest) Normalize(defaultLimit int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Page[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Data:    items,
		Total:   total,
		Page:    req.Page,
		Limit:   req.Limit,
		HasMore: int64(req.Offset()+len(items)) < total,
	}
}

func EmptyPage[T any](req PageRequest) Page[T] {
	return NewPage[T](nil, 0, req)
}
