package pagination

import "strconv"

// Params is the cursor protocol shared by every list endpoint: the cursor is
// the last-seen entity id, queries fetch Limit+1 rows, and the extra row
// signals another page.
type Params struct {
	Cursor uint
	Limit  int
}

// Page carries the pagination fields of a list response.
type Page struct {
	NextCursor  *uint `json:"nextCursor,omitempty"`
	HasNextPage bool  `json:"hasNextPage"`
}

// Parse reads cursor/limit query values, applying the default and cap.
func Parse(cursorParam, limitParam string, defaultLimit, maxLimit int) Params {
	p := Params{Limit: defaultLimit}
	if limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if cursorParam != "" {
		if c, err := strconv.ParseUint(cursorParam, 10, 64); err == nil {
			p.Cursor = uint(c)
		}
	}
	return p
}

// Trim cuts the probe row fetched with Limit+1 and reports hasNextPage.
// lastID extracts the cursor value from the final kept element.
func Trim[T any](rows []T, limit int, lastID func(T) uint) ([]T, Page) {
	page := Page{}
	if len(rows) > limit {
		rows = rows[:limit]
		page.HasNextPage = true
	}
	if len(rows) > 0 {
		id := lastID(rows[len(rows)-1])
		page.NextCursor = &id
	}
	return rows, page
}
