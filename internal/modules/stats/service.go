package stats

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Period selects the time window a summary covers.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// LanguageCount is one row of a per-language breakdown.
type LanguageCount struct {
	TargetLang string `json:"targetLang" bson:"_id"`
	Count      int64  `json:"count"      bson:"count"`
	Percentage string `json:"percentage" bson:"-"`
}

// LanguagePair is a (srcLang, targetLang) combination ranked by usage.
type LanguagePair struct {
	SrcLang    string `json:"srcLang"`
	TargetLang string `json:"targetLang"`
	Count      int64  `json:"count"`
}

// Summary is the response body for GET /stats.
type Summary struct {
	Period       Period          `json:"period"`
	Since        time.Time       `json:"since"`
	Total        int64           `json:"total"`
	ByLanguage   []LanguageCount `json:"byLanguage"`
	TopLanguages []LanguagePair  `json:"topLanguages"`
}

type Service struct {
	coll *mongo.Collection
}

func NewService(coll *mongo.Collection) *Service { return &Service{coll: coll} }

// Summarize aggregates the user's saved translations over the period:
// total count, per-target-language breakdown with percentages, and the
// two most used language pairs.
func (s *Service) Summarize(ctx context.Context, userID string, period Period) (*Summary, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	since := periodStart(period, time.Now())
	match := bson.M{"userId": oid, "createdAt": bson.M{"$gte": since}}

	byLang, total, err := s.byLanguage(ctx, match)
	if err != nil {
		return nil, err
	}
	top, err := s.topPairs(ctx, match)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Period:       period,
		Since:        since,
		Total:        total,
		ByLanguage:   byLang,
		TopLanguages: top,
	}, nil
}

func (s *Service) byLanguage(ctx context.Context, match bson.M) ([]LanguageCount, int64, error) {
	cur, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$targetLang",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	})
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	rows := make([]LanguageCount, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}

	var total int64
	for _, r := range rows {
		total += r.Count
	}
	for i := range rows {
		rows[i].Percentage = percentage(rows[i].Count, total)
	}
	return rows, total, nil
}

func (s *Service) topPairs(ctx context.Context, match bson.M) ([]LanguagePair, error) {
	cur, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"srcLang":    "$srcLang",
				"targetLang": "$targetLang",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: 2}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []struct {
		ID struct {
			SrcLang    string `bson:"srcLang"`
			TargetLang string `bson:"targetLang"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	pairs := make([]LanguagePair, 0, len(raw))
	for _, r := range raw {
		pairs = append(pairs, LanguagePair{
			SrcLang:    r.ID.SrcLang,
			TargetLang: r.ID.TargetLang,
			Count:      r.Count,
		})
	}
	return pairs, nil
}

// History returns the user's translations saved since the period start,
// newest first, for the activity view.
func (s *Service) History(ctx context.Context, userID string, period Period, limit int64) ([]bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	since := periodStart(period, time.Now())
	cur, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": oid, "createdAt": bson.M{"$gte": since}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"word":       1,
			"translation": 1,
			"srcLang":    1,
			"targetLang": 1,
			"isFavorite": 1,
			"level":      1,
			"createdAt":  1,
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]bson.M, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// periodStart snaps now to the start of the window: midnight for daily,
// 7 and 30 days back for weekly and monthly.
func periodStart(p Period, now time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case PeriodMonthly:
		return now.AddDate(0, 0, -30)
	default:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
}

func percentage(part, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// ParsePeriod maps a query value to a known period, defaulting to daily.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodWeekly:
		return PeriodWeekly
	case PeriodMonthly:
		return PeriodMonthly
	default:
		return PeriodDaily
	}
}
