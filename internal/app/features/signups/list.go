// internal/app/features/signups/list.go
package signups

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"

	uierrors "github.com/boonebg/unconfirmed/internal/app/features/errors"
	signupstore "github.com/boonebg/unconfirmed/internal/app/store/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/paging"
	"github.com/boonebg/unconfirmed/internal/app/system/sorting"
	"github.com/boonebg/unconfirmed/internal/app/system/timeouts"
	"github.com/boonebg/unconfirmed/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

const registeredLayout = "2006-01-02 15:04"

// ServeList handles GET /signups.
//
// It renders the pending-signups table with sortable headers, numbered
// pagination, the viewing summary, per-row action forms, and the status
// banner left by the previous action's redirect. Admin-only access is
// enforced by the route middleware.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "signup list")
	defer cancel()

	pr := paging.ParsePageRequest(r, h.Keys)
	cols := Columns()
	activeCol, order := sorting.Resolve(cols, pr.OrderBy, pr.Order)

	total, err := h.Store.CountPending(ctx)
	if err != nil {
		uierrors.LogServerError(w, r, h.Log, "list: count pending signups", err)
		return
	}

	rowsRaw, err := h.Store.List(ctx, signupstore.ListParams{
		OrderBy: activeCol.Name,
		Order:   order,
		Offset:  pr.Offset(),
		Limit:   int64(pr.PerPage),
	})
	if err != nil {
		uierrors.LogServerError(w, r, h.Log, "list: load pending signups", err)
		return
	}

	rows := make([]signupRow, 0, len(rowsRaw))
	for _, s := range rowsRaw {
		rows = append(rows, signupRow{
			UserLogin:     s.UserLogin,
			UserEmail:     s.UserEmail,
			Registered:    s.Registered.Format(registeredLayout),
			ActivationKey: s.ActivationKey,
			ResendCount:   s.ResendCount,
		})
	}

	// Sort state and per-page selection survive both header clicks and
	// page links.
	preserved := url.Values{}
	preserved.Set(h.Keys.PerPage, strconv.Itoa(pr.PerPage))
	preserved.Set(h.Keys.OrderBy, activeCol.Name)
	preserved.Set(h.Keys.Order, order)

	totalPages := paging.TotalPages(total, pr.PerPage)
	rng := paging.ComputeRange(pr.Page, pr.PerPage, total)

	data := listData{
		BaseVM:  viewdata.NewBaseVM(r, "Unconfirmed Signups", "/"),
		Rows:    rows,
		Columns: slices.Collect(sorting.Headers(cols, activeCol, order, preserved, h.Keys)),
		Total:   total,
		Summary: paging.Summary(rng, total),
		Links:   slices.Collect(paging.Links(pr.Page, totalPages, preserved, h.Keys)),
		Page:    pr.Page,
		PerPage: pr.PerPage,
		OrderBy: activeCol.Name,
		Order:   order,
		Keys:    h.Keys,
	}

	if st, ok := LookupStatus(query.Get(r, StatusParam)); ok {
		data.BannerSeverity = st.Severity
		data.BannerMessage = st.Message
	}

	templates.RenderAutoMap(w, r, "signups_list", nil, data)
}
