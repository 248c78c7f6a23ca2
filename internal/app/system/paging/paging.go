// internal/app/system/paging/paging.go

// Package paging parses list-navigation state from a request's query
// string and computes what a paged admin list needs: offsets, page
// counts, the "Viewing x - y of z" summary, and the page-link strip
// rendered under the table.
//
// Inputs are coerced rather than rejected: a malformed or non-positive
// page number falls back to its default so the list always renders.
package paging

import (
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// Defaults applied when a query parameter is absent or unusable.
const (
	DefaultPerPage = 10
	DefaultPage    = 1
)

// linkWindow is how many numbered links appear on each side of the
// current page before the strip collapses to a gap.
const linkWindow = 2

// Keys names the query parameters this package reads. Embedding
// applications can override them to dodge collisions with parameters
// the host already claims.
type Keys struct {
	PerPage string
	Paged   string
	OrderBy string
	Order   string
}

// DefaultKeys returns the conventional parameter names. "paged" rather
// than "page" because "page" tends to be taken by host routing.
func DefaultKeys() Keys {
	return Keys{
		PerPage: "per_page",
		Paged:   "paged",
		OrderBy: "orderby",
		Order:   "order",
	}
}

// PageRequest is the navigation state parsed from one request.
type PageRequest struct {
	Page    int
	PerPage int
	OrderBy string
	Order   string
}

// ParsePageRequest extracts paging and sort parameters from r using the
// given keys. It is a pure function of the query string: parsing the
// same request twice yields the same PageRequest. No upper bound is
// placed on PerPage.
func ParsePageRequest(r *http.Request, keys Keys) PageRequest {
	return PageRequest{
		Page:    positiveOr(query.Get(r, keys.Paged), DefaultPage),
		PerPage: positiveOr(query.Get(r, keys.PerPage), DefaultPerPage),
		OrderBy: query.Get(r, keys.OrderBy),
		Order:   query.Get(r, keys.Order),
	}
}

func positiveOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Offset returns the zero-based item offset for the page.
func (p PageRequest) Offset() int64 {
	return int64(p.Page-1) * int64(p.PerPage)
}

// TotalPages returns ceil(totalItems / perPage). Zero items means zero
// pages, not one.
func TotalPages(totalItems int64, perPage int) int {
	if totalItems <= 0 || perPage <= 0 {
		return 0
	}
	return int((totalItems + int64(perPage) - 1) / int64(perPage))
}

// Range is the 1-based display range for a page ("Viewing 5 - 8 of 12").
type Range struct {
	Start int64
	End   int64
}

// ComputeRange returns the display range for a page. Start is
// (page-1)*perPage+1 and is deliberately not clamped: a page past the
// end yields Start > totalItems, which callers treat as "no rows", not
// an error. End is clamped to totalItems.
func ComputeRange(page, perPage int, totalItems int64) Range {
	start := int64(page-1)*int64(perPage) + 1
	end := int64(page) * int64(perPage)
	if end > totalItems {
		end = totalItems
	}
	return Range{Start: start, End: end}
}

// SummaryTemplate formats the viewing summary. Package-level so a
// deployment can substitute a translated message; operands are start,
// end, total, in that order.
var SummaryTemplate = "Viewing %d - %d of a total of %d"

// Summary renders the viewing summary, or "" when there is nothing to
// view: zero items, or a page past the end whose unclamped Start has
// overshot End. A rendered summary always satisfies start <= end <=
// totalItems.
func Summary(rng Range, totalItems int64) string {
	if totalItems == 0 || rng.Start > rng.End {
		return ""
	}
	return fmt.Sprintf(SummaryTemplate, rng.Start, rng.End, totalItems)
}

// Link is one entry in the pagination strip.
type Link struct {
	Label     string
	Page      int
	URL       string
	IsCurrent bool
	IsGap     bool
}

// Links returns the prev/1/…/n/next sequence for the current page. The
// sequence is lazy, finite, and restartable; collect it with
// slices.Collect when a template needs to range over it more than once.
//
// Each link's query string carries the preserved parameters (per-page
// selection and sort state, typically) plus its own target page.
// Navigation is omitted entirely when there is one page or none.
func Links(current, totalPages int, preserved url.Values, keys Keys) iter.Seq[Link] {
	return func(yield func(Link) bool) {
		if totalPages <= 1 {
			return
		}
		if current < 1 {
			current = 1
		}

		if current > 1 {
			if !yield(pageLink("«", current-1, false, preserved, keys)) {
				return
			}
		}

		inGap := false
		for n := 1; n <= totalPages; n++ {
			near := n == 1 || n == totalPages || abs(n-current) <= linkWindow
			if near {
				inGap = false
				if !yield(pageLink(strconv.Itoa(n), n, n == current, preserved, keys)) {
					return
				}
				continue
			}
			if !inGap {
				inGap = true
				if !yield(Link{Label: "…", IsGap: true}) {
					return
				}
			}
		}

		if current < totalPages {
			if !yield(pageLink("»", current+1, false, preserved, keys)) {
				return
			}
		}
	}
}

func pageLink(label string, page int, isCurrent bool, preserved url.Values, keys Keys) Link {
	vals := url.Values{}
	for k, vs := range preserved {
		for _, v := range vs {
			vals.Add(k, v)
		}
	}
	vals.Set(keys.Paged, strconv.Itoa(page))
	return Link{
		Label:     label,
		Page:      page,
		URL:       "?" + vals.Encode(),
		IsCurrent: isCurrent,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
