// internal/app/features/signups/types.go
package signups

import (
	"github.com/boonebg/unconfirmed/internal/app/system/paging"
	"github.com/boonebg/unconfirmed/internal/app/system/sorting"
	"github.com/boonebg/unconfirmed/internal/app/system/viewdata"
)

// Row used in the pending-signups list.
type signupRow struct {
	UserLogin     string
	UserEmail     string
	Registered    string
	ActivationKey string
	ResendCount   int
}

// View model for the pending-signups list page.
type listData struct {
	viewdata.BaseVM

	Rows    []signupRow
	Columns []sorting.Header

	Total   int64
	Summary string
	Links   []paging.Link

	// Banner from the post-action redirect; Severity empty means no
	// banner.
	BannerSeverity string
	BannerMessage  string

	// Hidden form state so actions return to the same view.
	Page    int
	PerPage int
	OrderBy string
	Order   string

	// Configured key names for building the hidden fields.
	Keys paging.Keys
}
