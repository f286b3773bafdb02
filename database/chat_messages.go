package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"vegstock/model"
)

// InsertChatMessage はチャット履歴を1件追加します。successはアシスタント発言のみ設定します。
func InsertChatMessage(db *sqlx.DB, userID, role, content string, success *bool) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO chat_messages (id, user_id, role, content, success)
		VALUES (?, ?, ?, ?, ?)`,
		id, userID, role, content, success)
	if err != nil {
		return "", fmt.Errorf("failed to insert chat message: %w", err)
	}
	return id, nil
}

// GetChatMessages はユーザーのチャット履歴を古い順に返します。
func GetChatMessages(db *sqlx.DB, userID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	messages := []model.ChatMessage{}
	err := db.Select(&messages, `
		SELECT id, user_id, role, content, success, created_at
		FROM chat_messages
		WHERE user_id = ?
		ORDER BY created_at, rowid
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select chat messages: %w", err)
	}
	return messages, nil
}

// ClearChatMessages はユーザーのチャット履歴を全削除します。
func ClearChatMessages(db *sqlx.DB, userID string) error {
	if _, err := db.Exec(`DELETE FROM chat_messages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}
