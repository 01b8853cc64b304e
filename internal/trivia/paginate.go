package trivia

// QuestionsPerPage is the page size used when none is configured.
const QuestionsPerPage = 10

// Paginate returns page `page` (1-based) of items.
//
// A page past the last populated page is NotFound rather than an empty page.
// An empty set still has a valid first page so that an empty database lists
// cleanly; any other page of an empty set is NotFound.
func Paginate[T any](items []T, page, pageSize int) ([]T, error) {
	if pageSize <= 0 {
		pageSize = QuestionsPerPage
	}
	if page < 1 {
		return nil, notFound("")
	}

	maxPage := (len(items) + pageSize - 1) / pageSize
	if maxPage == 0 {
		if page == 1 {
			return []T{}, nil
		}
		return nil, notFound("")
	}
	if page > maxPage {
		return nil, notFound("")
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}
