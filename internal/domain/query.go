package domain

// Filter keys understood by the account list query
const (
	FilterCreateUserID = "createUserId" // Owner reference, injected by access scoping
	FilterUsername     = "username"     // Partial username match
	FilterStatus       = "status"       // Exact status match
)

// Pagination bounds
const (
	DefaultPage  = 1   // First page
	DefaultLimit = 10  // Page size when none supplied
	MaxLimit     = 100 // Upper bound on page size
)

// ListQuery is a paginated account list request with free-form filters
type ListQuery struct {
	Page    int               // 1-based page number
	Limit   int               // Page size
	Filters map[string]string // Filter values keyed by Filter* constants
}

// NewListQuery clamps page and limit into their valid ranges
func NewListQuery(page, limit int, filters map[string]string) ListQuery {
	if page < 1 {
		page = DefaultPage // Fall back to the first page
	}
	if limit < 1 {
		limit = DefaultLimit // Fall back to the default page size
	}
	if limit > MaxLimit {
		limit = MaxLimit // Cap page size
	}
	if filters == nil {
		filters = map[string]string{}
	}
	return ListQuery{Page: page, Limit: limit, Filters: filters}
}

// Offset returns the number of rows to skip for the current page
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page is a single page of results (legacy PageUtils shape)
type Page[T any] struct {
	List       []T   `json:"list"`       // Records on this page
	TotalCount int64 `json:"totalCount"` // Total matching records
	PageSize   int   `json:"pageSize"`   // Page size
	CurrPage   int   `json:"currPage"`   // Current page
	TotalPage  int   `json:"totalPage"`  // Total pages
}

// NewPage computes the page counters for list
func NewPage[T any](list []T, total int64, q ListQuery) Page[T] {
	if list == nil {
		list = []T{}
	}
	return Page[T]{
		List:       list,
		TotalCount: total,
		PageSize:   q.Limit,
		CurrPage:   q.Page,
		TotalPage:  (int(total) + q.Limit - 1) / q.Limit,
	}
}
