package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestIssueAndParse(t *testing.T) {
	token, err := Issue(secret, "abc-123", time.Hour)
	require.NoError(t, err)

	sid, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", sid)
}

func TestParse_Rejects(t *testing.T) {
	expired, err := Issue(secret, "abc", -time.Minute)
	require.NoError(t, err)
	otherKey, err := Issue([]byte("other"), "abc", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":     expired,
		"wrong key":   otherKey,
		"garbage":     "not-a-token",
		"empty token": "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(secret, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMiddleware_IssuesCookieOnce(t *testing.T) {
	var seen string
	h := Middleware(secret, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	first := seen
	assert.NotEmpty(t, first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Empty(t, w.Result().Cookies(), "valid cookie must be reused")
	assert.Equal(t, first, seen)
}

func TestMiddleware_ReplacesInvalidCookie(t *testing.T) {
	var seen string
	h := Middleware(secret, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Len(t, w.Result().Cookies(), 1)
	assert.NotEmpty(t, seen)
}

func TestMemoryFlashStore(t *testing.T) {
	s := NewMemoryFlashStore()
	ctx := context.Background()

	require.NoError(t, s.Push(ctx, "a", Flash{Level: LevelSuccess, Message: "saved"}))
	require.NoError(t, s.Push(ctx, "a", Flash{Level: LevelWarning, Message: "careful"}))
	require.NoError(t, s.Push(ctx, "b", Flash{Level: LevelInfo, Message: "other session"}))

	got, err := s.Pop(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []Flash{{LevelSuccess, "saved"}, {LevelWarning, "careful"}}, got)

	got, _ = s.Pop(ctx, "a")
	assert.Empty(t, got, "pop clears the session")
}

func TestRedisFlashStore_Push(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisFlashStore(client, 5*time.Minute)

	f := Flash{Level: LevelSuccess, Message: "Registered"}
	data, _ := json.Marshal(f)
	mock.ExpectRPush("flash:sid1", data).SetVal(1)
	mock.ExpectExpire("flash:sid1", 5*time.Minute).SetVal(true)

	require.NoError(t, s.Push(context.Background(), "sid1", f))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisFlashStore_Pop(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisFlashStore(client, time.Minute)

	mock.ExpectLRange("flash:sid1", 0, -1).SetVal([]string{
		`{"level":"success","message":"Updated"}`,
		`{"level":"warning","message":"Deleted"}`,
	})
	mock.ExpectDel("flash:sid1").SetVal(1)

	got, err := s.Pop(context.Background(), "sid1")
	require.NoError(t, err)
	assert.Equal(t, []Flash{{LevelSuccess, "Updated"}, {LevelWarning, "Deleted"}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisFlashStore_PopEmpty(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisFlashStore(client, time.Minute)

	mock.ExpectLRange("flash:none", 0, -1).SetVal([]string{})

	got, err := s.Pop(context.Background(), "none")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
