// Package pagination slices ordered post lists into fixed-size pages.
package pagination

import (
	"net/http"
	"strconv"

	"socialblog/internal/models"
)

// PageSize is the number of posts shown per feed page.
const PageSize = 10

type Page struct {
	Posts      []models.Post
	Number     int
	TotalPages int
	Total      int
	HasNext    bool
	HasPrev    bool
}

func (p Page) NextNumber() int { return p.Number + 1 }
func (p Page) PrevNumber() int { return p.Number - 1 }

// PageNumber reads the 1-based "page" query parameter. Absent or
// malformed values fall back to page 1.
func PageNumber(r *http.Request) int {
	number, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || number < 1 {
		return 1
	}
	return number
}

// Paginate returns the requested page of posts. Out-of-range numbers
// clamp to the nearest valid page; an empty list yields one empty page.
func Paginate(posts []models.Post, number int) Page {
	total := len(posts)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Posts:      posts[start:end],
		Number:     number,
		TotalPages: totalPages,
		Total:      total,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
