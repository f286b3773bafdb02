package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vegstock/auth"
	"vegstock/database"
	"vegstock/loader"
	"vegstock/model"
)

func newHandlerTestDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, loader.InitDatabase(db))

	userID, err := database.CreateUser(db, "test@example.com", "hash")
	require.NoError(t, err)
	return db, userID
}

func doChat(t *testing.T, handler http.HandlerFunc, method, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestChatHandlers_MessageHistoryClear(t *testing.T) {
	db, userID := newHandlerTestDB(t)
	orch := NewOrchestrator(&database.StockStore{DB: db}, nil)

	rec := doChat(t, PostMessageHandler(db, orch), http.MethodPost,
		`{"message":"ブロッコリーを新規追加"}`, userID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result TurnResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)

	// 発言と応答の2件が古い順で残る
	rec = doChat(t, HistoryHandler(db), http.MethodGet, "", userID)
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []model.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)

	rec = doChat(t, ClearHandler(db), http.MethodPost, "", userID)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doChat(t, HistoryHandler(db), http.MethodGet, "", userID)
	require.Equal(t, http.StatusOK, rec.Code)
	messages = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	assert.Empty(t, messages)
}

func TestChatHandlers_MethodNotAllowed(t *testing.T) {
	db, userID := newHandlerTestDB(t)
	orch := NewOrchestrator(&database.StockStore{DB: db}, nil)

	rec := doChat(t, PostMessageHandler(db, orch), http.MethodGet, "", userID)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doChat(t, HistoryHandler(db), http.MethodPost, "", userID)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doChat(t, ClearHandler(db), http.MethodGet, "", userID)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPostMessageHandler_EmptyMessage(t *testing.T) {
	db, userID := newHandlerTestDB(t)
	orch := NewOrchestrator(&database.StockStore{DB: db}, nil)

	rec := doChat(t, PostMessageHandler(db, orch), http.MethodPost, `{"message":"  "}`, userID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
