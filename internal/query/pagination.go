package query

const (
	DefaultLimit = 25
	MaxLimit     = 200
)

type Page struct {
	Limit  uint64
	Offset uint64
}

// Pagination clamps limit to [1, 200] (default 25 when absent or invalid)
// and offset to [0, ∞). Out-of-range input is corrected, never rejected.
func Pagination(limit, offset int) Page {
	p := Page{Limit: DefaultLimit}
	if limit > 0 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		p.Limit = uint64(limit)
	}
	if offset > 0 {
		p.Offset = uint64(offset)
	}
	return p
}
