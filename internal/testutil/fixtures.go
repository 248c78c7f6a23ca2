package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/boonebg/unconfirmed/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateSignup creates a pending signup with a fresh activation key.
// registered controls list ordering in tests.
func (f *Fixtures) CreateSignup(ctx context.Context, login, email string, registered time.Time) models.Signup {
	f.t.Helper()

	signup := models.Signup{
		ID:            primitive.NewObjectID(),
		Domain:        "example.com",
		Path:          "/",
		UserLogin:     login,
		UserEmail:     email,
		Registered:    registered,
		Active:        false,
		ActivationKey: uuid.NewString(),
	}

	_, err := f.db.Collection("signups").InsertOne(ctx, signup)
	if err != nil {
		f.t.Fatalf("failed to create test signup: %v", err)
	}

	return signup
}

// CreateSignupWithMeta creates a pending signup carrying registration
// metadata.
func (f *Fixtures) CreateSignupWithMeta(ctx context.Context, login, email string, meta map[string]string) models.Signup {
	f.t.Helper()

	signup := models.Signup{
		ID:            primitive.NewObjectID(),
		Domain:        "example.com",
		Path:          "/",
		UserLogin:     login,
		UserEmail:     email,
		Registered:    time.Now().UTC(),
		Active:        false,
		ActivationKey: uuid.NewString(),
		Meta:          meta,
	}

	_, err := f.db.Collection("signups").InsertOne(ctx, signup)
	if err != nil {
		f.t.Fatalf("failed to create test signup: %v", err)
	}

	return signup
}

// CreateActivatedSignup creates a signup that was already activated.
func (f *Fixtures) CreateActivatedSignup(ctx context.Context, login, email string) models.Signup {
	f.t.Helper()

	now := time.Now().UTC()
	signup := models.Signup{
		ID:            primitive.NewObjectID(),
		Domain:        "example.com",
		Path:          "/",
		UserLogin:     login,
		UserEmail:     email,
		Registered:    now.Add(-24 * time.Hour),
		Activated:     &now,
		Active:        true,
		ActivationKey: uuid.NewString(),
	}

	_, err := f.db.Collection("signups").InsertOne(ctx, signup)
	if err != nil {
		f.t.Fatalf("failed to create activated test signup: %v", err)
	}

	return signup
}

// CreatePendingSignups creates n pending signups registered one minute
// apart, oldest first. Useful for pagination tests.
func (f *Fixtures) CreatePendingSignups(ctx context.Context, n int) []models.Signup {
	f.t.Helper()

	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	signups := make([]models.Signup, 0, n)
	for i := 0; i < n; i++ {
		login := "user" + string(rune('a'+i%26)) + uuid.NewString()[:8]
		s := f.CreateSignup(ctx, login, login+"@example.com", base.Add(time.Duration(i)*time.Minute))
		signups = append(signups, s)
	}
	return signups
}

// CreateAdmin creates an administrator with the given password.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}

	return user
}
