package pagination

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		cursor       string
		limit        string
		defaultLimit int
		maxLimit     int
		wantCursor   uint
		wantLimit    int
	}{
		{"defaults", "", "", 20, 50, 0, 20},
		{"explicit", "42", "10", 20, 50, 42, 10},
		{"capped", "", "500", 20, 50, 0, 50},
		{"zero limit falls back", "", "0", 20, 50, 0, 20},
		{"negative limit falls back", "", "-3", 20, 50, 0, 20},
		{"garbage cursor ignored", "abc", "", 20, 50, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.cursor, tt.limit, tt.defaultLimit, tt.maxLimit)
			if p.Cursor != tt.wantCursor || p.Limit != tt.wantLimit {
				t.Errorf("Parse() = {%d %d}, want {%d %d}", p.Cursor, p.Limit, tt.wantCursor, tt.wantLimit)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	id := func(v uint) uint { return v }

	// Probe row present: trimmed, hasNextPage set
	rows, page := Trim([]uint{5, 4, 3, 2}, 3, id)
	if len(rows) != 3 || !page.HasNextPage {
		t.Errorf("Trim full page = %v hasNext=%v, want 3 rows and hasNext", rows, page.HasNextPage)
	}
	if page.NextCursor == nil || *page.NextCursor != 3 {
		t.Errorf("nextCursor = %v, want 3", page.NextCursor)
	}

	// Short page: untouched, no next page
	rows, page = Trim([]uint{2, 1}, 3, id)
	if len(rows) != 2 || page.HasNextPage {
		t.Errorf("Trim short page = %v hasNext=%v, want 2 rows no next", rows, page.HasNextPage)
	}
	if page.NextCursor == nil || *page.NextCursor != 1 {
		t.Errorf("nextCursor = %v, want 1", page.NextCursor)
	}

	// Empty result: no cursor
	rows, page = Trim([]uint{}, 3, id)
	if len(rows) != 0 || page.HasNextPage || page.NextCursor != nil {
		t.Errorf("Trim empty = %v %+v, want empty page", rows, page)
	}
}
