package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vegstock/loader"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, loader.InitDatabase(db))
	return db
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)

	rec := postJSON(t, SignupHandler(db), `{"email":"Tarou@Example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"tarou@example.com"`)
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	// 登録と同時にログイン状態になる
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	RequireUser(db, MeHandler(db))(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"tarou@example.com"`)

	// 参照専用エンドポイントはGET以外を受け付けない
	req = httptest.NewRequest(http.MethodPost, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	RequireUser(db, MeHandler(db))(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// 別セッションでログインし直す
	rec = postJSON(t, LoginHandler(db), `{"email":"tarou@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionCookie(t, rec)
}

func TestSignup_Validation(t *testing.T) {
	db := newTestDB(t)

	rec := postJSON(t, SignupHandler(db), `{"email":"not-an-email","password":"secret-pass"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, SignupHandler(db), `{"email":"tarou@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	rec := postJSON(t, SignupHandler(db), `{"email":"tarou@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, SignupHandler(db), `{"email":"TAROU@example.com","password":"another-pass"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	db := newTestDB(t)

	rec := postJSON(t, SignupHandler(db), `{"email":"tarou@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// 存在しないユーザーも間違いパスワードも同じ401
	rec = postJSON(t, LoginHandler(db), `{"email":"tarou@example.com","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, LoginHandler(db), `{"email":"unknown@example.com","password":"secret-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUser(t *testing.T) {
	db := newTestDB(t)

	next := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserID(r.Context())))
	}

	// Cookieなしは401
	req := httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
	rec := httptest.NewRecorder()
	RequireUser(db, next)(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 無効なセッションも401
	req = httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "bogus"})
	rec = httptest.NewRecorder()
	RequireUser(db, next)(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 有効なセッションはユーザーIDがコンテキストに載る
	signup := postJSON(t, SignupHandler(db), `{"email":"tarou@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, signup.Code)
	cookie := sessionCookie(t, signup)

	req = httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	RequireUser(db, next)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestLogout(t *testing.T) {
	db := newTestDB(t)

	signup := postJSON(t, SignupHandler(db), `{"email":"tarou@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, signup.Code)
	cookie := sessionCookie(t, signup)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	LogoutHandler(db)(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// 破棄済みセッションでは認証が通らない
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	RequireUser(db, MeHandler(db))(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
