package vocab

import (
	"context"
	"errors"
	"time"

	"github.com/wordbridge/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Service struct {
	coll *mongo.Collection
}

func NewService(coll *mongo.Collection) *Service { return &Service{coll: coll} }

// List returns the user's saved translations, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]models.SavedTranslation, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, bson.M{"userId": oid},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// Search applies the query filters to the user's own translations.
// Keyword search rides the text index on word.
func (s *Service) Search(ctx context.Context, userID string, q SearchQuery) ([]models.SavedTranslation, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"userId": oid}
	if q.Keyword != "" {
		filter["$text"] = bson.M{"$search": q.Keyword}
	}
	if q.SrcLang != "" {
		filter["srcLang"] = q.SrcLang
	}
	if q.TargetLang != "" {
		filter["targetLang"] = q.TargetLang
	}
	if q.Level != "" {
		filter["level"] = q.Level
	}
	if q.Favorite != nil {
		filter["isFavorite"] = *q.Favorite
	}
	if created := dateRange(q.From, q.To); created != nil {
		filter["createdAt"] = created
	}

	return s.find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// Favorites returns the user's favorites. sortBy is "word" for an
// alphabetical (case-insensitive) list, anything else sorts by creation
// time. order "asc" flips the default direction.
func (s *Service) Favorites(ctx context.Context, userID, sortBy, order string) ([]models.SavedTranslation, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if sortBy == "word" {
		dir := 1
		if order == "desc" {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: "word", Value: dir}}).
			SetCollation(&options.Collation{Locale: "en", Strength: 2})
	} else {
		dir := -1
		if order == "asc" {
			dir = 1
		}
		opts.SetSort(bson.D{{Key: "createdAt", Value: dir}})
	}

	return s.find(ctx, bson.M{"userId": oid, "isFavorite": true}, opts)
}

// SetFavorite flips the favorite flag on one of the user's translations.
func (s *Service) SetFavorite(ctx context.Context, userID, id string, fav bool) (*models.SavedTranslation, error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}

	var t models.SavedTranslation
	err = s.coll.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": bson.M{"isFavorite": fav}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetDifficulty records how well the user knows a word. Easy words are
// deleted outright (the caller gets deleted=true); medium and hard
// update the level in place.
func (s *Service) SetDifficulty(ctx context.Context, userID, id, level string) (deleted bool, t *models.SavedTranslation, err error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return false, nil, err
	}

	if level == models.LevelEasy {
		res, err := s.coll.DeleteOne(ctx, filter)
		if err != nil {
			return false, nil, err
		}
		if res.DeletedCount == 0 {
			return false, nil, errNotFound
		}
		return true, nil, nil
	}

	var updated models.SavedTranslation
	err = s.coll.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": bson.M{"level": level}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil, errNotFound
	}
	if err != nil {
		return false, nil, err
	}
	return false, &updated, nil
}

// Delete removes one of the user's translations by id.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errNotFound
	}
	return nil
}

func (s *Service) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.SavedTranslation, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.SavedTranslation, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ownedFilter scopes a by-id operation to the requesting user so one
// user can never touch another's entries.
func ownedFilter(userID, id string) (bson.M, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errNotFound
	}
	return bson.M{"_id": oid, "userId": uid}, nil
}

func dateRange(from, to string) bson.M {
	r := bson.M{}
	if t, _, ok := parseDate(from); ok {
		r["$gte"] = t
	}
	if t, dateOnly, ok := parseDate(to); ok {
		if dateOnly {
			// A bare date means the whole day, inclusive.
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r["$lte"] = t
	}
	if len(r) == 0 {
		return nil
	}
	return r
}

func parseDate(s string) (t time.Time, dateOnly, ok bool) {
	if s == "" {
		return time.Time{}, false, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}
