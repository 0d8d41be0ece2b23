package printer

// Paginate returns the zero based page of items with the given page size.
// Pages out of range return an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return []T{}
	}

	start := page * size
	if start >= len(items) {
		return []T{}
	}

	end := min(start+size, len(items))
	return items[start:end]
}

// PageCount returns the number of pages needed to show total items.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
