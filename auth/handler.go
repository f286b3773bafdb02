package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"vegstock/config"
	"vegstock/database"
)

const sessionCookieName = "vegstock_session"

type contextKey string

const userIDKey contextKey = "userID"

// UserID はリクエストコンテキストからログイン中のユーザーIDを取り出します。
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// WithUserID はユーザーIDを載せたコンテキストを返します（テスト用にも公開）。
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequireUser はセッションCookieを検証し、ユーザーIDをコンテキストに載せて
// 次のハンドラーへ渡します。未ログインは401です。
func RequireUser(db *sqlx.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "ログインが必要です。", http.StatusUnauthorized)
			return
		}

		userID, err := database.GetSessionUserID(db, cookie.Value)
		if err != nil {
			log.Printf("Session lookup failed: %v", err)
			http.Error(w, "セッションの確認に失敗しました。", http.StatusInternalServerError)
			return
		}
		if userID == "" {
			http.Error(w, "セッションが無効です。再度ログインしてください。", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(WithUserID(r.Context(), userID)))
	}
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupHandler はユーザー登録を処理します。登録後はそのままログイン状態になります。
func SignupHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var payload credentialsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(strings.ToLower(payload.Email))
		if email == "" || !strings.Contains(email, "@") {
			http.Error(w, "メールアドレスが正しくありません。", http.StatusBadRequest)
			return
		}
		if len(payload.Password) < 8 {
			http.Error(w, "パスワードは8文字以上にしてください。", http.StatusBadRequest)
			return
		}

		existing, err := database.GetUserByEmail(db, email)
		if err != nil {
			log.Printf("User lookup failed: %v", err)
			http.Error(w, "ユーザー登録に失敗しました。", http.StatusInternalServerError)
			return
		}
		if existing != nil {
			http.Error(w, "このメールアドレスは既に登録されています。", http.StatusConflict)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Password hashing failed: %v", err)
			http.Error(w, "ユーザー登録に失敗しました。", http.StatusInternalServerError)
			return
		}

		userID, err := database.CreateUser(db, email, string(hash))
		if err != nil {
			log.Printf("User creation failed: %v", err)
			http.Error(w, "ユーザー登録に失敗しました。", http.StatusInternalServerError)
			return
		}

		if err := issueSession(w, db, userID); err != nil {
			log.Printf("Session issue failed: %v", err)
			http.Error(w, "セッションの発行に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"userId": userID, "email": email})
	}
}

// LoginHandler はメールアドレスとパスワードでログインします。
func LoginHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var payload credentialsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(strings.ToLower(payload.Email))
		user, err := database.GetUserByEmail(db, email)
		if err != nil {
			log.Printf("User lookup failed: %v", err)
			http.Error(w, "ログインに失敗しました。", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "メールアドレスまたはパスワードが正しくありません。", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
			http.Error(w, "メールアドレスまたはパスワードが正しくありません。", http.StatusUnauthorized)
			return
		}

		if err := issueSession(w, db, user.ID); err != nil {
			log.Printf("Session issue failed: %v", err)
			http.Error(w, "セッションの発行に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"userId": user.ID, "email": user.Email})
	}
}

// LogoutHandler はセッションを破棄します。
func LogoutHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			if err := database.DeleteSession(db, cookie.Value); err != nil {
				log.Printf("Session delete failed: %v", err)
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// MeHandler はログイン中のユーザー情報を返します。RequireUserの内側で使います。
func MeHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		user, err := database.GetUserByID(db, UserID(r.Context()))
		if err != nil {
			log.Printf("User lookup failed: %v", err)
			http.Error(w, "ユーザー情報の取得に失敗しました。", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "ユーザーが見つかりません。", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"userId": user.ID, "email": user.Email})
	}
}

func issueSession(w http.ResponseWriter, db *sqlx.DB, userID string) error {
	cfg := config.GetConfig()
	ttl := cfg.SessionTTLHours
	if ttl == 0 {
		ttl = 336
	}

	sessionID, err := database.CreateSession(db, userID, ttl)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   ttl * 3600,
	})
	return nil
}
