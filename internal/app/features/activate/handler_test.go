package activate_test

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/boonebg/unconfirmed/internal/app/features/activate"
	signupstore "github.com/boonebg/unconfirmed/internal/app/store/signups"
	"github.com/boonebg/unconfirmed/internal/app/system/auditlog"
	"github.com/boonebg/unconfirmed/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*activate.Handler, *signupstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := signupstore.New(db)
	audit := auditlog.New(nil, logger, auditlog.Config{Auth: "off", Admin: "off"})
	fixtures := testutil.NewFixtures(t, db)
	return activate.NewHandler(store, audit, logger), store, fixtures
}

// serve runs the handler with the template panic swallowed; the engine
// is not booted in tests, so only the DB side effects are asserted.
func serve(h *activate.Handler, target string) {
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		h.ServeActivate(rec, req)
	}()
}

func TestServeActivate_ActivatesSignup(t *testing.T) {
	handler, store, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateSignup(ctx, "newuser", "newuser@example.com", time.Now())

	serve(handler, "/activate?key="+url.QueryEscape(signup.ActivationKey))

	got, err := store.GetByKey(ctx, signup.ActivationKey)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if !got.Active {
		t.Error("expected signup to be active after visiting the activation link")
	}
	if got.Activated == nil {
		t.Error("expected activated timestamp to be set")
	}
}

func TestServeActivate_UnknownKeyChangesNothing(t *testing.T) {
	handler, store, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateSignup(ctx, "pending", "pending@example.com", time.Now())

	serve(handler, "/activate?key=no-such-key")

	got, err := store.GetByKey(ctx, signup.ActivationKey)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if got.Active {
		t.Error("unrelated signup should remain pending")
	}
}

func TestServeActivate_SecondVisitStaysActive(t *testing.T) {
	handler, store, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	signup := fixtures.CreateSignup(ctx, "repeat", "repeat@example.com", time.Now())
	target := "/activate?key=" + url.QueryEscape(signup.ActivationKey)

	serve(handler, target)
	serve(handler, target)

	got, err := store.GetByKey(ctx, signup.ActivationKey)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if !got.Active {
		t.Error("signup should stay active after a repeat visit")
	}
}
