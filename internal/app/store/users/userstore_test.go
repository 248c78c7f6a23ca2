package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/boonebg/unconfirmed/internal/app/store/users"
	"github.com/boonebg/unconfirmed/internal/testutil"
)

func TestCreateAndGetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "Boone", "Boone@Example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "boone@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.Role != "admin" {
		t.Errorf("role = %q, want admin", created.Role)
	}

	// Lookup is case-insensitive.
	got, err := store.GetByEmail(ctx, "BOONE@example.COM")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Error("lookup returned a different user")
	}

	if !userstore.VerifyPassword(got, "hunter2hunter2") {
		t.Error("correct password rejected")
	}
	if userstore.VerifyPassword(got, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestGetByEmailNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByEmail(ctx, "ghost@example.com")
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEnsureAdminIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	first, err := store.EnsureAdmin(ctx, "Admin", "admin@example.com", "initialpass1234")
	if err != nil {
		t.Fatalf("first EnsureAdmin failed: %v", err)
	}

	// A second call must not create a new account or rotate the
	// password.
	second, err := store.EnsureAdmin(ctx, "Admin", "admin@example.com", "differentpass999")
	if err != nil {
		t.Fatalf("second EnsureAdmin failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("EnsureAdmin created a duplicate admin")
	}
	if !userstore.VerifyPassword(second, "initialpass1234") {
		t.Error("original password no longer valid")
	}
}
