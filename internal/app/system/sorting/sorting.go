// internal/app/system/sorting/sorting.go

// Package sorting resolves user-supplied sort parameters against a
// fixed column registry. Unknown column names and bogus directions
// never reach a query: they collapse to the registry's default.
package sorting

import (
	"fmt"
	"iter"
	"net/url"
	"strings"

	"github.com/boonebg/unconfirmed/internal/app/system/paging"
)

// Sort directions. Order values from a request are matched
// case-insensitively against these.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Column describes one sortable list column.
type Column struct {
	// Name is the identifier carried in the orderby query parameter.
	Name string
	// Title is the header text shown to the admin.
	Title string
	// CSSClass styles the header and body cells for this column.
	CSSClass string
	// DefaultOrder is the direction used when this column becomes the
	// active sort without an explicit order.
	DefaultOrder string
	// IsDefault marks the column sorted by when no orderby is given.
	// Exactly one column per registry must set it.
	IsDefault bool
}

// Validate checks a column registry for configuration mistakes. It is
// meant to run at startup so a bad registry fails the boot, not a
// request.
func Validate(cols []Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("sorting: no columns configured")
	}
	seen := make(map[string]bool, len(cols))
	defaults := 0
	for _, c := range cols {
		if c.Name == "" {
			return fmt.Errorf("sorting: column with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("sorting: duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if c.DefaultOrder != Asc && c.DefaultOrder != Desc {
			return fmt.Errorf("sorting: column %q has invalid default order %q", c.Name, c.DefaultOrder)
		}
		if c.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		return fmt.Errorf("sorting: registry needs exactly one default column, has %d", defaults)
	}
	return nil
}

// Default returns the registry's default column. Call Validate first;
// on an unvalidated registry with no default this falls back to the
// first column.
func Default(cols []Column) Column {
	for _, c := range cols {
		if c.IsDefault {
			return c
		}
	}
	return cols[0]
}

// Resolve maps a requested column name and direction onto the registry.
// An unknown or empty name resolves to the default column. The
// direction is accepted case-insensitively when it is asc or desc;
// anything else becomes the resolved column's default order.
func Resolve(cols []Column, requestedName, requestedOrder string) (Column, string) {
	col := Default(cols)
	for _, c := range cols {
		if c.Name == requestedName {
			col = c
			break
		}
	}
	switch strings.ToLower(requestedOrder) {
	case Asc:
		return col, Asc
	case Desc:
		return col, Desc
	default:
		return col, col.DefaultOrder
	}
}

// flip inverts a direction.
func flip(order string) string {
	if order == Asc {
		return Desc
	}
	return Asc
}

// Header is one sortable <th> for rendering.
type Header struct {
	Column   Column
	IsActive bool
	// Order is the direction the header's link requests: the flipped
	// direction for the active column, the column's own default
	// otherwise.
	Order string
	URL   string
}

// Headers yields one Header per registered column, in registry order.
// The sequence is restartable; collect it with slices.Collect for
// templates. Header links reset to page one, since reordering
// invalidates the current page position, and carry the preserved
// parameters (per-page selection, typically).
func Headers(cols []Column, active Column, activeOrder string, preserved url.Values, keys paging.Keys) iter.Seq[Header] {
	return func(yield func(Header) bool) {
		for _, c := range cols {
			h := Header{Column: c, IsActive: c.Name == active.Name}
			if h.IsActive {
				h.Order = flip(activeOrder)
			} else {
				h.Order = c.DefaultOrder
			}
			h.URL = headerURL(c.Name, h.Order, preserved, keys)
			if !yield(h) {
				return
			}
		}
	}
}

func headerURL(name, order string, preserved url.Values, keys paging.Keys) string {
	vals := url.Values{}
	for k, vs := range preserved {
		for _, v := range vs {
			vals.Add(k, v)
		}
	}
	vals.Set(keys.OrderBy, name)
	vals.Set(keys.Order, order)
	vals.Del(keys.Paged)
	return "?" + vals.Encode()
}
