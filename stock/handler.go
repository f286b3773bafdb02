package stock

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"vegstock/auth"
	"vegstock/config"
	"vegstock/database"
	"vegstock/model"
	"vegstock/stockmath"
)

// StocksHandler は GET で在庫一覧、POST で新規登録を処理します。
func StocksHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listStocks(db)(w, r)
		case http.MethodPost:
			createStock(db)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func listStocks(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stocks, err := database.GetStocksByUser(db, auth.UserID(r.Context()))
		if err != nil {
			log.Printf("Failed to list stocks: %v", err)
			http.Error(w, "在庫一覧の取得に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stocks)
	}
}

func createStock(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.StockInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ok, errs := stockmath.ValidateStockData(input.Name, input.TotalWeightG, input.DailyUsageG, input.StockCountBag)
		if !ok {
			http.Error(w, strings.Join(errs, "、"), http.StatusBadRequest)
			return
		}

		userID := auth.UserID(r.Context())

		existing, err := database.GetStockByName(db, userID, strings.TrimSpace(input.Name))
		if err != nil {
			log.Printf("Failed to check existing stock: %v", err)
			http.Error(w, "在庫の登録に失敗しました。", http.StatusInternalServerError)
			return
		}
		if existing != nil {
			http.Error(w, input.Name+"は既に登録されています。", http.StatusConflict)
			return
		}

		newStock := model.Stock{
			UserID:        userID,
			Name:          strings.TrimSpace(input.Name),
			TotalWeightG:  input.TotalWeightG,
			DailyUsageG:   input.DailyUsageG,
			StockCountBag: input.StockCountBag,
			ThresholdDays: input.ThresholdDays,
		}
		if err := database.CreateStock(db, &newStock); err != nil {
			log.Printf("Failed to create stock: %v", err)
			http.Error(w, "在庫の登録に失敗しました。", http.StatusInternalServerError)
			return
		}

		created, err := database.GetStockByID(db, newStock.ID, userID)
		if err != nil || created == nil {
			log.Printf("Failed to reload created stock: %v", err)
			http.Error(w, "在庫の登録に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(created)
	}
}

// UpdateStockHandler は在庫の全項目更新を処理します。
func UpdateStockHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var input model.StockInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if input.ID == "" {
			http.Error(w, "idが指定されていません。", http.StatusBadRequest)
			return
		}

		ok, errs := stockmath.ValidateStockData(input.Name, input.TotalWeightG, input.DailyUsageG, input.StockCountBag)
		if !ok {
			http.Error(w, strings.Join(errs, "、"), http.StatusBadRequest)
			return
		}

		userID := auth.UserID(r.Context())
		updated := model.Stock{
			ID:            input.ID,
			UserID:        userID,
			Name:          strings.TrimSpace(input.Name),
			TotalWeightG:  input.TotalWeightG,
			DailyUsageG:   input.DailyUsageG,
			StockCountBag: input.StockCountBag,
			ThresholdDays: input.ThresholdDays,
		}

		if err := database.UpdateStock(db, &updated); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "対象の在庫が見つかりません。", http.StatusNotFound)
				return
			}
			log.Printf("Failed to update stock: %v", err)
			http.Error(w, "在庫の更新に失敗しました。", http.StatusInternalServerError)
			return
		}

		stock, err := database.GetStockByID(db, input.ID, userID)
		if err != nil || stock == nil {
			log.Printf("Failed to reload updated stock: %v", err)
			http.Error(w, "在庫の更新に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stock)
	}
}

// UpdateCountHandler は在庫数のみの更新を処理します。
func UpdateCountHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var payload struct {
			ID    string  `json:"id"`
			Count float64 `json:"count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.ID == "" {
			http.Error(w, "idが指定されていません。", http.StatusBadRequest)
			return
		}
		if payload.Count < 0 {
			http.Error(w, "袋数は0以上である必要があります", http.StatusBadRequest)
			return
		}

		userID := auth.UserID(r.Context())
		if err := database.UpdateStockCount(db, payload.ID, userID, payload.Count); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "対象の在庫が見つかりません。", http.StatusNotFound)
				return
			}
			log.Printf("Failed to update stock count: %v", err)
			http.Error(w, "在庫数の更新に失敗しました。", http.StatusInternalServerError)
			return
		}

		stock, err := database.GetStockByID(db, payload.ID, userID)
		if err != nil || stock == nil {
			log.Printf("Failed to reload stock: %v", err)
			http.Error(w, "在庫数の更新に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stock)
	}
}

// DeleteStockHandler は在庫の削除を処理します。
func DeleteStockHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var payload struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := database.DeleteStock(db, payload.ID, auth.UserID(r.Context())); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "対象の在庫が見つかりません。", http.StatusNotFound)
				return
			}
			log.Printf("Failed to delete stock: %v", err)
			http.Error(w, "在庫の削除に失敗しました。", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// MetricsHandler はチャート表示用に各在庫の消費予測指標を返します。
func MetricsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		stocks, err := database.GetStocksByUser(db, auth.UserID(r.Context()))
		if err != nil {
			log.Printf("Failed to list stocks for metrics: %v", err)
			http.Error(w, "在庫指標の取得に失敗しました。", http.StatusInternalServerError)
			return
		}

		targetDays := config.GetConfig().TargetStockDays
		if targetDays == 0 {
			targetDays = stockmath.DefaultTargetDays
		}

		metrics := make([]model.StockMetrics, 0, len(stocks))
		for _, s := range stocks {
			metrics = append(metrics, buildMetrics(s, targetDays))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics)
	}
}

func buildMetrics(s model.Stock, targetDays int) model.StockMetrics {
	remaining := stockmath.RemainingDays(s.TotalWeightG, s.DailyUsageG, s.StockCountBag)

	status := "ok"
	if s.StockCountBag == 0 {
		status = "out"
	} else if s.ThresholdDays != nil && remaining != nil && *remaining <= *s.ThresholdDays {
		status = "low"
	}

	return model.StockMetrics{
		Stock:         s,
		RemainingDays: remaining,
		RequiredBags:  stockmath.RequiredBags(s.TotalWeightG, s.DailyUsageG, targetDays),
		ShortfallBags: stockmath.ShortfallBags(s.TotalWeightG, s.DailyUsageG, s.StockCountBag, targetDays),
		Status:        status,
	}
}
