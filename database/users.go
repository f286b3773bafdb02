package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"vegstock/model"
)

// CreateUser はユーザーを登録し、採番したIDを返します。
func CreateUser(db *sqlx.DB, email, passwordHash string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO users (id, email, password_hash)
		VALUES (?, ?, ?)`,
		id, email, passwordHash)
	if err != nil {
		return "", fmt.Errorf("failed to insert user %s: %w", email, err)
	}
	return id, nil
}

// GetUserByEmail はメールアドレスでユーザーを取得します。見つからない場合は (nil, nil) を返します。
func GetUserByEmail(db *sqlx.DB, email string) (*model.User, error) {
	var u model.User
	err := db.Get(&u, `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// GetUserByID はIDでユーザーを取得します。見つからない場合は (nil, nil) を返します。
func GetUserByID(db *sqlx.DB, id string) (*model.User, error) {
	var u model.User
	err := db.Get(&u, `SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &u, nil
}

// CreateSession はセッションを発行し、セッションIDを返します。
func CreateSession(db *sqlx.DB, userID string, ttlHours int) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, datetime('now', ?))`,
		id, userID, fmt.Sprintf("+%d hours", ttlHours))
	if err != nil {
		return "", fmt.Errorf("failed to insert session for user %s: %w", userID, err)
	}
	return id, nil
}

// GetSessionUserID はセッションIDから有効なセッションのユーザーIDを返します。
// 無効・期限切れの場合は空文字を返します。
func GetSessionUserID(db *sqlx.DB, sessionID string) (string, error) {
	var userID string
	err := db.Get(&userID, `
		SELECT user_id FROM sessions
		WHERE id = ? AND expires_at >= datetime('now')`,
		sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return userID, nil
}

// DeleteSession はセッションを破棄します。
func DeleteSession(db *sqlx.DB, sessionID string) error {
	if _, err := db.Exec(`DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
