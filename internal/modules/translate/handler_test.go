package translate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
	"github.com/wordbridge/core/internal/middleware"
	"github.com/wordbridge/core/internal/models"
	"github.com/wordbridge/core/internal/pkg/session"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func storedTranslation(id, uid primitive.ObjectID) *models.SavedTranslation {
	return &models.SavedTranslation{
		ID:          id,
		Word:        "computer",
		Translation: "كمبيوتر",
		SrcLang:     "en",
		TargetLang:  "ar",
		UserID:      uid,
		Level:       models.LevelMedium,
	}
}

func newTestRouter(svc *Service, userID string, sess *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextKeyUserID, userID)
		}
		if sess != nil {
			c.Set("guest_session", sess)
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group(""), func(c *gin.Context) { c.Next() })
	return r
}

func postTranslate(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerValidationError(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()
	svc := NewService(NewTieredCache(db), &fakeEngine{}, &fakeStore{}, 2, zap.NewNop())
	r := newTestRouter(svc, "", session.New("s1"))

	w := postTranslate(t, r, `{"word":"computer"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Contains(t, body["message"], "srcLang")
}

func TestHandlerCacheHitPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	svc := NewService(NewTieredCache(db), &fakeEngine{}, &fakeStore{}, 2, zap.NewNop())
	r := newTestRouter(svc, "", session.New("s1"))

	mock.ExpectHGet("hotcache:translation:computer:en:ar", "computer").SetVal(mustJSON(t, testEntry()))

	w := postTranslate(t, r, `{"word":"computer","srcLang":"en","targetLang":"ar"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "cache", body.Data["source"])
	require.Equal(t, "كمبيوتر", body.Data["translation"])
}

func TestHandlerGuestPayloadAndLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{result: &EngineResult{Translation: "كمبيوتر"}}
	svc := NewService(NewTieredCache(db), engine, &fakeStore{}, 2, zap.NewNop())
	sess := session.New("s1")
	r := newTestRouter(svc, "", sess)

	for want := 1; want <= 2; want++ {
		expectTotalMiss(mock, "computer", "en", "ar")
		w := postTranslate(t, r, `{"word":"computer","srcLang":"en","targetLang":"ar"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data struct {
				Count int `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, want, body.Data.Count)
	}

	expectTotalMiss(mock, "computer", "en", "ar")
	w := postTranslate(t, r, `{"word":"computer","srcLang":"en","targetLang":"ar"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "log in")
}

func TestHandlerQuotaMapsTo503(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{err: &EngineError{Kind: KindQuota, Message: "429"}}
	svc := NewService(NewTieredCache(db), engine, &fakeStore{}, 2, zap.NewNop())
	r := newTestRouter(svc, primitive.NewObjectID().Hex(), nil)

	expectTotalMiss(mock, "computer", "en", "ar")
	w := postTranslate(t, r, `{"word":"computer","srcLang":"en","targetLang":"ar"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandlerGenericEngineFailureMapsTo500(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{err: &EngineError{Kind: KindGeneric, Message: "nope"}}
	svc := NewService(NewTieredCache(db), engine, &fakeStore{}, 2, zap.NewNop())
	r := newTestRouter(svc, primitive.NewObjectID().Hex(), nil)

	expectTotalMiss(mock, "computer", "en", "ar")
	w := postTranslate(t, r, `{"word":"computer","srcLang":"en","targetLang":"ar"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "proper translation")
}

func TestHandlerPhrasePayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	engine := &fakeEngine{result: &EngineResult{Translation: "كيف حالك"}}
	svc := NewService(NewTieredCache(db), engine, &fakeStore{}, 2, zap.NewNop())
	r := newTestRouter(svc, primitive.NewObjectID().Hex(), nil)

	expectTotalMiss(mock, "how are you", "en", "ar")
	w := postTranslate(t, r, `{"word":"how are you","srcLang":"en","targetLang":"ar"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "not saved")
}

func TestHandlerAlreadyExistsPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	oid := primitive.NewObjectID()
	uid := primitive.NewObjectID()
	engine := &fakeEngine{result: &EngineResult{Translation: "كمبيوتر"}}
	store := &fakeStore{existing: storedTranslation(oid, uid)}
	svc := NewService(NewTieredCache(db), engine, store, 2, zap.NewNop())
	r := newTestRouter(svc, uid.Hex(), nil)

	expectTotalMiss(mock, "computer", "en", "ar")
	expectWriteThrough(t, mock, "computer", "en", "ar", Entry{
		ID:          oid.Hex(),
		Original:    "computer",
		Translation: "كمبيوتر",
	})

	w := postTranslate(t, r, `{"word":"computer","srcLang":"en","targetLang":"ar"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "already exists")
}
