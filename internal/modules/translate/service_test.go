package translate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
	"github.com/wordbridge/core/internal/models"
	"github.com/wordbridge/core/internal/pkg/session"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeEngine struct {
	result *EngineResult
	err    error
	calls  int
}

func (f *fakeEngine) Translate(ctx context.Context, word, paragraph, srcLang, targetLang string) (*EngineResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStore struct {
	existing    *models.SavedTranslation
	createErr   error
	findErr     error
	createdID   primitive.ObjectID
	created     *models.SavedTranslation
	findCalls   int
	createCalls int
}

func (f *fakeStore) FindExisting(ctx context.Context, word, srcLang, targetLang, userID string) (*models.SavedTranslation, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.existing, nil
}

func (f *fakeStore) Create(ctx context.Context, t *models.SavedTranslation) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = f.createdID
	t.Level = models.LevelMedium
	f.created = t
	return nil
}

func expectTotalMiss(mock redismock.ClientMock, word, src, target string) {
	for _, tier := range tierOrder {
		mock.ExpectHGet(BuildKey(tier, word, src, target), word).RedisNil()
	}
}

func expectWriteThrough(t *testing.T, mock redismock.ClientMock, word, src, target string, e Entry) {
	t.Helper()
	payload, err := json.Marshal(&e)
	require.NoError(t, err)
	mock.ExpectTxPipeline()
	for _, tier := range tierOrder {
		key := BuildKey(tier, word, src, target)
		mock.ExpectHSet(key, word, payload).SetVal(1)
		mock.ExpectExpire(key, tierTTL[tier]).SetVal(true)
	}
	mock.ExpectTxPipelineExec()
}

func TestTranslateRejectsMissingFields(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()
	svc := NewService(NewTieredCache(db), &fakeEngine{}, &fakeStore{}, 2, zap.NewNop())

	for _, req := range []Request{
		{SrcLang: "en", TargetLang: "ar"},
		{Word: "computer", TargetLang: "ar"},
		{Word: "computer", SrcLang: "en"},
	} {
		_, err := svc.TranslateAndSave(context.Background(), req, session.New(""), "")
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestTranslateCacheHitSkipsEngineAndStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{}
	store := &fakeStore{}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())

	entry := testEntry()
	mock.ExpectHGet("hotcache:translation:computer:en:ar", "computer").SetVal(mustJSON(t, entry))

	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"},
		session.New("s1"), "")
	require.NoError(t, err)
	require.Equal(t, "cache", out.Source)
	require.Equal(t, TierHot, out.Tier)
	require.Equal(t, "كمبيوتر", out.Entry.Translation)
	require.Zero(t, engine.calls)
	require.Zero(t, store.findCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateCacheHitIsFreeForGuests(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	svc := NewService(NewTieredCache(db), &fakeEngine{}, &fakeStore{}, 2, zap.NewNop())

	sess := session.New("s1")
	sess.SetGuestTranslationCount(2) // already exhausted

	mock.ExpectHGet("hotcache:translation:computer:en:ar", "computer").SetVal(mustJSON(t, testEntry()))

	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"}, sess, "")
	require.NoError(t, err)
	require.Equal(t, "cache", out.Source)
	require.Equal(t, 2, sess.GuestTranslationCount())
}

func TestTranslateCacheOutageFallsThroughToEngine(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{result: &EngineResult{Translation: "كمبيوتر"}}
	oid := primitive.NewObjectID()
	uid := primitive.NewObjectID()
	store := &fakeStore{createdID: oid}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())

	down := errors.New("connection refused")
	for _, tier := range tierOrder {
		mock.ExpectHGet(BuildKey(tier, "computer", "en", "ar"), "computer").SetErr(down)
	}
	expectWriteThrough(t, mock, "computer", "en", "ar", Entry{
		ID:          oid.Hex(),
		Original:    "computer",
		Translation: "كمبيوتر",
	})

	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"},
		session.New("s1"), uid.Hex())
	require.NoError(t, err)
	require.Equal(t, "engine", out.Source)
	require.Equal(t, 1, engine.calls)
	require.Equal(t, 1, store.createCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateGuestAllowedThenRejected(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{result: &EngineResult{Translation: "كمبيوتر"}}
	store := &fakeStore{}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())

	sess := session.New("s1")

	for want := 1; want <= 2; want++ {
		expectTotalMiss(mock, "computer", "en", "ar")
		out, err := svc.TranslateAndSave(context.Background(),
			Request{Word: "computer", SrcLang: "en", TargetLang: "ar"}, sess, "")
		require.NoError(t, err)
		require.True(t, out.Guest)
		require.Equal(t, want, out.GuestCount)
		require.Equal(t, "كمبيوتر", out.Entry.Translation)
	}

	expectTotalMiss(mock, "computer", "en", "ar")
	_, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"}, sess, "")
	var limitErr *LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	require.Equal(t, 2, limitErr.Limit)
	require.Equal(t, 2, sess.GuestTranslationCount())

	// Guests never touch the store or write the cache.
	require.Zero(t, store.findCalls)
	require.Zero(t, store.createCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslatePhraseNeverPersistedOrCached(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{result: &EngineResult{Translation: "كيف حالك"}}
	store := &fakeStore{}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())

	expectTotalMiss(mock, "how are you", "en", "ar")

	uid := primitive.NewObjectID().Hex()
	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "how are you", SrcLang: "en", TargetLang: "ar"},
		session.New("s1"), uid)
	require.NoError(t, err)
	require.True(t, out.Phrase)
	require.Equal(t, "engine", out.Source)
	require.Zero(t, store.findCalls)
	require.Zero(t, store.createCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateExistingRecordWins(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	oid := primitive.NewObjectID()
	uid := primitive.NewObjectID()
	stored := &models.SavedTranslation{
		ID:          oid,
		Word:        "computer",
		Translation: "حاسوب", // differs from the fresh engine result
		SrcLang:     "en",
		TargetLang:  "ar",
		UserID:      uid,
		IsFavorite:  true,
		Level:       models.LevelHard,
	}
	engine := &fakeEngine{result: &EngineResult{Translation: "كمبيوتر"}}
	store := &fakeStore{existing: stored}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())

	expectTotalMiss(mock, "computer", "en", "ar")
	// Backfill uses the stored record, not the fresh engine result.
	expectWriteThrough(t, mock, "computer", "en", "ar", Entry{
		ID:          oid.Hex(),
		Original:    "computer",
		Translation: "حاسوب",
	})

	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"},
		session.New("s1"), uid.Hex())
	require.NoError(t, err)
	require.True(t, out.AlreadyExists)
	require.Equal(t, "حاسوب", out.Entry.Translation)
	require.True(t, out.IsFavorite)
	require.Equal(t, models.LevelHard, out.Level)
	require.Zero(t, store.createCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateCreatesAndWritesThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	oid := primitive.NewObjectID()
	uid := primitive.NewObjectID()
	engine := &fakeEngine{result: &EngineResult{
		Translation:    "كمبيوتر",
		Definition:     "an electronic device",
		Examples:       []string{"I use my computer daily."},
		SynonymsSource: []string{"PC"},
		SynonymsTarget: []string{"حاسوب"},
	}}
	store := &fakeStore{createdID: oid}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())

	expectTotalMiss(mock, "computer", "en", "ar")
	expectWriteThrough(t, mock, "computer", "en", "ar", Entry{
		ID:             oid.Hex(),
		Original:       "computer",
		Translation:    "كمبيوتر",
		Definition:     "an electronic device",
		Examples:       []string{"I use my computer daily."},
		SynonymsSource: []string{"PC"},
		SynonymsTarget: []string{"حاسوب"},
	})

	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar", IsFavorite: true},
		session.New("s1"), uid.Hex())
	require.NoError(t, err)
	require.Equal(t, "engine", out.Source)
	require.False(t, out.AlreadyExists)
	require.Equal(t, oid.Hex(), out.Entry.ID)
	require.Equal(t, models.LevelMedium, out.Level)
	require.True(t, out.IsFavorite)
	require.NotNil(t, out.Saved)
	require.Equal(t, uid, store.created.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateDuplicateRaceFallsBackToWinner(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	oid := primitive.NewObjectID()
	uid := primitive.NewObjectID()
	winner := &models.SavedTranslation{
		ID:          oid,
		Word:        "computer",
		Translation: "كمبيوتر",
		SrcLang:     "en",
		TargetLang:  "ar",
		UserID:      uid,
		Level:       models.LevelMedium,
	}
	engine := &fakeEngine{result: &EngineResult{Translation: "كمبيوتر"}}
	store := &raceStore{winner: winner}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())

	expectTotalMiss(mock, "computer", "en", "ar")
	expectWriteThrough(t, mock, "computer", "en", "ar", Entry{
		ID:          oid.Hex(),
		Original:    "computer",
		Translation: "كمبيوتر",
	})

	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"},
		session.New("s1"), uid.Hex())
	require.NoError(t, err)
	require.True(t, out.AlreadyExists)
	require.Equal(t, oid.Hex(), out.Entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// raceStore simulates losing the unique-index race: the first lookup
// misses, the insert hits the duplicate key, the second lookup finds the
// record the concurrent request created.
type raceStore struct {
	winner    *models.SavedTranslation
	findCalls int
}

func (r *raceStore) FindExisting(ctx context.Context, word, srcLang, targetLang, userID string) (*models.SavedTranslation, error) {
	r.findCalls++
	if r.findCalls == 1 {
		return nil, nil
	}
	return r.winner, nil
}

func (r *raceStore) Create(ctx context.Context, t *models.SavedTranslation) error {
	return ErrDuplicateEntry
}

func TestTranslateQuotaErrorMapsToUnavailable(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{err: &EngineError{Kind: KindQuota, Message: "429 too many requests"}}
	svc := NewService(NewTieredCache(db), engine, &fakeStore{}, 2, zap.NewNop())

	expectTotalMiss(mock, "computer", "en", "ar")

	_, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"},
		session.New("s1"), primitive.NewObjectID().Hex())
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestTranslateGenericEngineErrorMapsToNoTranslation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{err: &EngineError{Kind: KindGeneric, Message: "model refused"}}
	svc := NewService(NewTieredCache(db), engine, &fakeStore{}, 2, zap.NewNop())

	expectTotalMiss(mock, "computer", "en", "ar")

	_, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"},
		session.New("s1"), primitive.NewObjectID().Hex())
	var noTrans *NoTranslationError
	require.ErrorAs(t, err, &noTrans)
}

func TestTranslateNilSessionGuestStillLimited(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{result: &EngineResult{Translation: "كمبيوتر"}}
	svc := NewService(NewTieredCache(db), engine, &fakeStore{}, 2, zap.NewNop())

	expectTotalMiss(mock, "computer", "en", "ar")

	out, err := svc.TranslateAndSave(context.Background(),
		Request{Word: "computer", SrcLang: "en", TargetLang: "ar"}, nil, "")
	require.NoError(t, err)
	require.True(t, out.Guest)
	require.Equal(t, 1, out.GuestCount)
}
