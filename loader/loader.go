package loader

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id),
	expires_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stocks (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL REFERENCES users(id),
	name            TEXT NOT NULL,
	total_weight_g  REAL NOT NULL,
	daily_usage_g   REAL NOT NULL,
	stock_count_bag REAL NOT NULL,
	threshold_days  INTEGER,
	created_at      TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_stocks_user_updated ON stocks(user_id, updated_at DESC);

CREATE TABLE IF NOT EXISTS chat_messages (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id),
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	success    INTEGER,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_chat_user_created ON chat_messages(user_id, created_at);
`

// InitDatabase はデータベーススキーマを適用します。
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Schema applied successfully.")

	// 期限切れセッションは起動時に掃除しておく
	if _, err := db.Exec(`DELETE FROM sessions WHERE expires_at < datetime('now')`); err != nil {
		log.Printf("WARN: Failed to clean up expired sessions: %v", err)
	}

	return nil
}
