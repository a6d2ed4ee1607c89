package domain

// Page sizes come in two tiers only.
const (
	MinPageSize = 25
	MaxPageSize = 50
)

// ApplicationQuery is a normalized listing request. Size is always one of the
// two page size tiers and Offset is nil when no offset should be applied.
type ApplicationQuery struct {
	UserName *string
	Size     int
	Offset   *int
}

// ClampPageSize maps a requested size onto a tier: anything at or above
// MaxPageSize becomes MaxPageSize, everything else MinPageSize.
func ClampPageSize(size int) int {
	if size >= MaxPageSize {
		return MaxPageSize
	}
	return MinPageSize
}

// PageOffset converts a 1-based page number into a row offset.
func PageOffset(page *int, size int) *int {
	if page == nil || *page <= 1 {
		return nil
	}
	offset := (*page - 1) * size
	return &offset
}

// NewApplicationQuery normalizes raw listing parameters. A nil size selects the
// default tier. An empty user name means no filter.
func NewApplicationQuery(userName string, size *int, page *int) ApplicationQuery {
	effective := MinPageSize
	if size != nil {
		effective = ClampPageSize(*size)
	}
	q := ApplicationQuery{
		Size:   effective,
		Offset: PageOffset(page, effective),
	}
	if userName != "" {
		q.UserName = &userName
	}
	return q
}
