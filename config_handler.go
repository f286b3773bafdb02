package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vegstock/config"
)

// ヘルパー関数: エラーをJSONで返す
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler は現在の設定を返します
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		cfg.GeminiAPIKey = "" // APIキーは外に出さない
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler は設定を保存します
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}

		if err := validateTargetDays(newCfg.TargetStockDays); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		// APIキーが空のときは既存の値を引き継ぐ
		if newCfg.GeminiAPIKey == "" {
			newCfg.GeminiAPIKey = config.GetConfig().GeminiAPIKey
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "設定の保存に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "設定を保存しました。"})
	}
}

// 目標日数を検証するヘルパー関数
func validateTargetDays(days int) error {
	if days < 0 {
		return errors.New("目標ストック日数には0以上の値を指定してください。")
	}
	if days > 365 {
		return errors.New("目標ストック日数は365日以内で指定してください。")
	}
	return nil
}
