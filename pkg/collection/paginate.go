package collection

// Pagination defaults.
const (
	DefaultPage    = 1
	DefaultPerPage = 8
)

// Paginate returns the page-th chunk of perPage items (pages start at 1).
// Non-positive arguments fall back to the defaults. A page past the end is empty.
func Paginate[T any](data []T, page, perPage int) []T {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	start := (page - 1) * perPage
	if start >= len(data) {
		return []T{}
	}
	end := min(start+perPage, len(data))
	return data[start:end:end]
}

// TotalPages is the number of pages Paginate yields for n items.
func TotalPages(n, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}
