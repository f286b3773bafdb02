package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"vegstock/model"
)

// GetStocksByUser はユーザーの在庫一覧を更新日時の降順で返します。
func GetStocksByUser(db *sqlx.DB, userID string) ([]model.Stock, error) {
	stocks := []model.Stock{}
	err := db.Select(&stocks, `
		SELECT id, user_id, name, total_weight_g, daily_usage_g, stock_count_bag, threshold_days, created_at, updated_at
		FROM stocks
		WHERE user_id = ?
		ORDER BY updated_at DESC, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select stocks for user %s: %w", userID, err)
	}
	return stocks, nil
}

// GetStockByID は在庫1件を取得します。見つからない場合は (nil, nil) を返します。
func GetStockByID(db *sqlx.DB, id, userID string) (*model.Stock, error) {
	var s model.Stock
	err := db.Get(&s, `
		SELECT id, user_id, name, total_weight_g, daily_usage_g, stock_count_bag, threshold_days, created_at, updated_at
		FROM stocks
		WHERE id = ? AND user_id = ?`,
		id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock %s: %w", id, err)
	}
	return &s, nil
}

// GetStockByName は名前の完全一致で在庫を取得します。見つからない場合は (nil, nil) を返します。
func GetStockByName(db *sqlx.DB, userID, name string) (*model.Stock, error) {
	var s model.Stock
	err := db.Get(&s, `
		SELECT id, user_id, name, total_weight_g, daily_usage_g, stock_count_bag, threshold_days, created_at, updated_at
		FROM stocks
		WHERE user_id = ? AND name = ?`,
		userID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock by name %s: %w", name, err)
	}
	return &s, nil
}

// CreateStock は在庫を新規登録します。IDが未設定なら採番します。
func CreateStock(db *sqlx.DB, s *model.Stock) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := db.Exec(`
		INSERT INTO stocks (id, user_id, name, total_weight_g, daily_usage_g, stock_count_bag, threshold_days)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, s.TotalWeightG, s.DailyUsageG, s.StockCountBag, s.ThresholdDays)
	if err != nil {
		return fmt.Errorf("failed to insert stock %s: %w", s.Name, err)
	}
	return nil
}

// UpdateStock は在庫の全項目を更新します。
func UpdateStock(db *sqlx.DB, s *model.Stock) error {
	res, err := db.Exec(`
		UPDATE stocks
		SET name = ?, total_weight_g = ?, daily_usage_g = ?, stock_count_bag = ?, threshold_days = ?, updated_at = datetime('now')
		WHERE id = ? AND user_id = ?`,
		s.Name, s.TotalWeightG, s.DailyUsageG, s.StockCountBag, s.ThresholdDays, s.ID, s.UserID)
	if err != nil {
		return fmt.Errorf("failed to update stock %s: %w", s.ID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStockCount は在庫数のみを更新します。
func UpdateStockCount(db *sqlx.DB, id, userID string, newCount float64) error {
	res, err := db.Exec(`
		UPDATE stocks
		SET stock_count_bag = ?, updated_at = datetime('now')
		WHERE id = ? AND user_id = ?`,
		newCount, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update stock count for %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteStock は在庫を削除します。
func DeleteStock(db *sqlx.DB, id, userID string) error {
	res, err := db.Exec(`DELETE FROM stocks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete stock %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertStockByNameInTx はCSVインポート用に、同名在庫があれば更新、なければ登録します。
func UpsertStockByNameInTx(tx *sqlx.Tx, userID string, s *model.Stock) error {
	var existingID string
	err := tx.Get(&existingID, `SELECT id FROM stocks WHERE user_id = ? AND name = ?`, userID, s.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to look up stock %s: %w", s.Name, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		id := uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO stocks (id, user_id, name, total_weight_g, daily_usage_g, stock_count_bag, threshold_days)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, userID, s.Name, s.TotalWeightG, s.DailyUsageG, s.StockCountBag, s.ThresholdDays)
		if err != nil {
			return fmt.Errorf("failed to insert stock %s: %w", s.Name, err)
		}
		return nil
	}

	_, err = tx.Exec(`
		UPDATE stocks
		SET total_weight_g = ?, daily_usage_g = ?, stock_count_bag = ?, threshold_days = ?, updated_at = datetime('now')
		WHERE id = ?`,
		s.TotalWeightG, s.DailyUsageG, s.StockCountBag, s.ThresholdDays, existingID)
	if err != nil {
		return fmt.Errorf("failed to update stock %s: %w", s.Name, err)
	}
	return nil
}
