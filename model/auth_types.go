package model

type User struct {
	ID           string `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

type Session struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	ExpiresAt string `db:"expires_at"`
}
