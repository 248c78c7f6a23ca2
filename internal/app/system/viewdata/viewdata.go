// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/boonebg/unconfirmed/internal/app/system/authz"
	"github.com/boonebg/unconfirmed/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models. Embed it in
// feature-specific view models:
//
//	type listPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := listPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Pending Signups", "/"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string
}

// siteName is set by Init from app config; defaults otherwise.
var siteName = models.DefaultSiteName

// Init sets the configured site name. Call once at startup from
// bootstrap.
func Init(name string) {
	if name != "" {
		siteName = name
	}
}

// NewBaseVM creates a fully populated BaseVM for a page. backDefault is
// the back-button target used when the request carries no explicit
// back parameter.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	return BaseVM{
		SiteName:    siteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
}
