package database

import (
	"github.com/jmoiron/sqlx"

	"vegstock/model"
)

// StockStore はチャットオーケストレーターに注入する在庫ストアの実装です。
// テストでは同じインターフェースを満たすフェイクに差し替えられます。
type StockStore struct {
	DB *sqlx.DB
}

func (s *StockStore) List(userID string) ([]model.Stock, error) {
	return GetStocksByUser(s.DB, userID)
}

func (s *StockStore) Create(stock *model.Stock) error {
	return CreateStock(s.DB, stock)
}

func (s *StockStore) UpdateCount(id, userID string, newCount float64) error {
	return UpdateStockCount(s.DB, id, userID, newCount)
}
