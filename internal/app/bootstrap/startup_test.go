package bootstrap

import (
	"testing"

	"github.com/boonebg/unconfirmed/internal/domain/models"
	"github.com/boonebg/unconfirmed/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestStartup_SeedsAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{
		SiteName:      "Unconfirmed",
		AdminName:     "Site Admin",
		AdminEmail:    "admin@test.com",
		AdminPassword: "a strong passphrase",
	}

	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find seeded admin: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
	if user.FullName != "Site Admin" {
		t.Errorf("expected full name 'Site Admin', got %q", user.FullName)
	}
}

func TestStartup_SeedIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{
		SiteName:      "Unconfirmed",
		AdminEmail:    "admin@test.com",
		AdminPassword: "first password",
	}

	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("first Startup failed: %v", err)
	}

	var before models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&before); err != nil {
		t.Fatalf("failed to find seeded admin: %v", err)
	}

	// A later run with a different configured password must not touch
	// the existing account.
	appCfg.AdminPassword = "second password"
	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("second Startup failed: %v", err)
	}

	var after models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&after); err != nil {
		t.Fatalf("failed to find admin after rerun: %v", err)
	}
	if after.ID != before.ID {
		t.Error("expected the same admin document on rerun")
	}
	if after.PasswordHash != before.PasswordHash {
		t.Error("expected password hash to be unchanged on rerun")
	}
}

func TestStartup_NoSeedWithoutConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := Startup(ctx, nil, AppConfig{SiteName: "Unconfirmed"}, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no users seeded, got %d", n)
	}
}
