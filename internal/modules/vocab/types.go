package vocab

import "errors"

var errNotFound = errors.New("translation not found")

// SearchQuery carries the optional filters for GET /vocab/search. All
// filters are combined with AND; absent ones are skipped.
type SearchQuery struct {
	Keyword    string `form:"keyword"`
	SrcLang    string `form:"srcLang"`
	TargetLang string `form:"targetLang"`
	From       string `form:"from"` // RFC3339 or 2006-01-02
	To         string `form:"to"`
	Favorite   *bool  `form:"favorite"`
	Level      string `form:"level"`
}

// FavoriteDTO is the body for PATCH /vocab/:id/favorite.
type FavoriteDTO struct {
	IsFavorite bool `json:"isFavorite"`
}

// DifficultyDTO is the body for PATCH /vocab/:id/difficulty. Marking a
// word easy retires it; marking it hard keeps it in rotation.
type DifficultyDTO struct {
	Level string `json:"level" binding:"required,oneof=easy medium hard"`
}
