package viewset

// MaxPageSize bounds limit; it is also the default so unpaginated clients
// still get everything in one page.
const MaxPageSize = 10000

// Pagination binds the limit/offset/order_by query parameters of every
// list endpoint.
type Pagination struct {
	Limit   int      `form:"limit,default=10000" binding:"gte=0,lte=10000"`
	Offset  int      `form:"offset,default=0" binding:"gte=0"`
	OrderBy []string `form:"order_by"`
}

// Page is the uniform list envelope. Count is the post-filter, pre-slice
// cardinality.
type Page struct {
	Items []any `json:"items"`
	Count int64 `json:"count"`
}
