package chat

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"vegstock/auth"
	"vegstock/database"
)

type messagePayload struct {
	Message string `json:"message"`
}

// PostMessageHandler はチャット1ターンを処理し、発言と応答を履歴に記録します。
func PostMessageHandler(db *sqlx.DB, orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var payload messagePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		text := strings.TrimSpace(payload.Message)
		if text == "" {
			http.Error(w, "メッセージが空です。", http.StatusBadRequest)
			return
		}

		userID := auth.UserID(r.Context())

		if _, err := database.InsertChatMessage(db, userID, "user", text, nil); err != nil {
			log.Printf("Failed to record user message: %v", err)
		}

		result := orch.HandleMessage(r.Context(), userID, text)

		if _, err := database.InsertChatMessage(db, userID, "assistant", result.Message, &result.Success); err != nil {
			log.Printf("Failed to record assistant message: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// HistoryHandler はチャット履歴を古い順で返します。
func HistoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		messages, err := database.GetChatMessages(db, auth.UserID(r.Context()), 200)
		if err != nil {
			log.Printf("Failed to load chat history: %v", err)
			http.Error(w, "チャット履歴の取得に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messages)
	}
}

// ClearHandler はチャット履歴を全削除します。
func ClearHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := database.ClearChatMessages(db, auth.UserID(r.Context())); err != nil {
			log.Printf("Failed to clear chat history: %v", err)
			http.Error(w, "チャット履歴の削除に失敗しました。", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
