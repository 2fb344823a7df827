package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wordbridge/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateEntry is returned by Create when a concurrent request
// already inserted the same natural key; the caller falls back to the
// existing record.
var ErrDuplicateEntry = errors.New("translation already saved")

// Store persists saved translations in the document store.
type Store struct {
	coll *mongo.Collection
}

// NewStore creates a store over the saved-translations collection.
func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// FindExisting looks up a record by its natural key
// (word, srcLang, targetLang, userId). Absence is not an error.
func (s *Store) FindExisting(ctx context.Context, word, srcLang, targetLang, userID string) (*models.SavedTranslation, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	var t models.SavedTranslation
	err = s.coll.FindOne(ctx, bson.M{
		"word":       word,
		"srcLang":    srcLang,
		"targetLang": targetLang,
		"userId":     oid,
	}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new saved translation. The unique compound index on
// the natural key turns a lost race into ErrDuplicateEntry.
func (s *Store) Create(ctx context.Context, t *models.SavedTranslation) error {
	if t.Level == "" {
		t.Level = models.LevelMedium
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	res, err := s.coll.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

// CountSince counts a user's saved translations created at or after the
// given time; backs the daily quota check.
func (s *Store) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, fmt.Errorf("invalid user id: %w", err)
	}
	return s.coll.CountDocuments(ctx, bson.M{
		"userId":    oid,
		"createdAt": bson.M{"$gte": since},
	})
}
