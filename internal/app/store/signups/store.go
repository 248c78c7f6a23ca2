// internal/app/store/signups/store.go
package signups

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boonebg/unconfirmed/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no signup matches the activation key.
	ErrNotFound = errors.New("signup not found")
	// ErrAlreadyActive is returned when the signup was already activated.
	ErrAlreadyActive = errors.New("signup already active")
)

// sortFields maps the public column names onto bson fields. List never
// interpolates a request-supplied name into a query: anything not in
// this map sorts by registration date.
var sortFields = map[string]string{
	"user_login":     "user_login",
	"user_email":     "user_email",
	"registered":     "registered",
	"activation_key": "activation_key",
}

const defaultSortField = "registered"

// Store manages pending-signup records.
type Store struct {
	c *mongo.Collection
}

// New creates a new signups Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("signups")}
}

// EnsureIndexes creates the indexes the list and the activation lookup
// depend on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "activation_key", Value: 1}},
			Options: options.Index().SetName("idx_signups_key").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "active", Value: 1},
				{Key: "registered", Value: -1},
			},
			Options: options.Index().SetName("idx_signups_pending_registered"),
		},
		{
			Keys: bson.D{
				{Key: "active", Value: 1},
				{Key: "user_login", Value: 1},
			},
			Options: options.Index().SetName("idx_signups_pending_login"),
		},
		{
			Keys: bson.D{
				{Key: "active", Value: 1},
				{Key: "user_email", Value: 1},
			},
			Options: options.Index().SetName("idx_signups_pending_email"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// ListParams selects one page of pending signups.
type ListParams struct {
	// OrderBy is a public column name; unknown values fall back to the
	// registration date.
	OrderBy string
	// Order is "asc" or "desc"; anything else means desc.
	Order  string
	Offset int64
	Limit  int64
}

// List returns one page of unactivated signups. The page and the total
// from CountPending come from separate reads, so a signup activated
// between the two can make the numbers drift by one; the list tolerates
// that rather than holding a transaction across page renders.
func (s *Store) List(ctx context.Context, p ListParams) ([]models.Signup, error) {
	field, ok := sortFields[p.OrderBy]
	if !ok {
		field = defaultSortField
	}
	dir := -1
	if p.Order == "asc" {
		dir = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}}).
		SetSkip(p.Offset)
	if p.Limit > 0 {
		opts.SetLimit(p.Limit)
	}

	cursor, err := s.c.Find(ctx, bson.M{"active": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	defer cursor.Close(ctx)

	var signups []models.Signup
	if err := cursor.All(ctx, &signups); err != nil {
		return nil, fmt.Errorf("decode signups: %w", err)
	}
	return signups, nil
}

// CountPending returns how many signups are awaiting activation.
func (s *Store) CountPending(ctx context.Context) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"active": false})
	if err != nil {
		return 0, fmt.Errorf("count signups: %w", err)
	}
	return n, nil
}

// GetByKey returns the signup with the given activation key, active or
// not.
func (s *Store) GetByKey(ctx context.Context, key string) (*models.Signup, error) {
	var signup models.Signup
	err := s.c.FindOne(ctx, bson.M{"activation_key": key}).Decode(&signup)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get signup by key: %w", err)
	}
	return &signup, nil
}

// Activate flips the signup with the given key to active and stamps the
// activation time. Returns ErrNotFound when no signup carries the key
// and ErrAlreadyActive when it was activated earlier; the caller
// decides which of those is a success for its purposes.
func (s *Store) Activate(ctx context.Context, key string) (*models.Signup, error) {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"active":    true,
		"activated": now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var signup models.Signup
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"activation_key": key, "active": false},
		update, opts).Decode(&signup)
	if err == nil {
		return &signup, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("activate signup: %w", err)
	}

	// Nothing pending under that key: distinguish "no such signup"
	// from "already active".
	existing, getErr := s.GetByKey(ctx, key)
	if getErr != nil {
		return nil, ErrNotFound
	}
	if existing.Active {
		return existing, ErrAlreadyActive
	}
	return nil, ErrNotFound
}

// MarkResent bumps the resend counter and stamps the last send time for
// a pending signup.
func (s *Store) MarkResent(ctx context.Context, key string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"activation_key": key, "active": false},
		bson.M{
			"$inc": bson.M{"resend_count": 1},
			"$set": bson.M{"last_sent_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("mark resent: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Insert stores a new signup record. Used by seeding and fixtures; the
// registration flow itself lives in the network's signup service.
func (s *Store) Insert(ctx context.Context, signup *models.Signup) error {
	if signup.ID.IsZero() {
		signup.ID = primitive.NewObjectID()
	}
	if signup.Registered.IsZero() {
		signup.Registered = time.Now()
	}
	if _, err := s.c.InsertOne(ctx, signup); err != nil {
		return fmt.Errorf("insert signup: %w", err)
	}
	return nil
}
