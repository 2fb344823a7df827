package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty levels for saved vocabulary entries.
const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
)

// SavedTranslation is a vocabulary entry owned by a user. The tuple
// (word, srcLang, targetLang, userId) is its natural key; the collection
// carries a unique compound index on it so lookup-or-create cannot race
// into duplicates.
type SavedTranslation struct {
	ID             primitive.ObjectID `json:"id"              bson:"_id,omitempty"`
	Word           string             `json:"original"        bson:"word"`
	Translation    string             `json:"translation"     bson:"translation"`
	SrcLang        string             `json:"srcLang"         bson:"srcLang"`
	TargetLang     string             `json:"targetLang"      bson:"targetLang"`
	UserID         primitive.ObjectID `json:"-"               bson:"userId"`
	IsFavorite     bool               `json:"isFavorite"      bson:"isFavorite"`
	Definition     string             `json:"definition,omitempty"      bson:"definition,omitempty"`
	Examples       []string           `json:"examples,omitempty"        bson:"examples,omitempty"`
	SynonymsSource []string           `json:"synonyms_src,omitempty"    bson:"synonymsSrc,omitempty"`
	SynonymsTarget []string           `json:"synonyms_target,omitempty" bson:"synonymsTarget,omitempty"`
	Level          string             `json:"level"           bson:"level"`
	CreatedAt      time.Time          `json:"created_at"      bson:"createdAt"`
}
