package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"vegstock/auth"
	"vegstock/chat"
	"vegstock/database"
	"vegstock/stock"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, assistant chat.Assistant) {

	store := &database.StockStore{DB: dbConn}
	orch := chat.NewOrchestrator(store, assistant)

	mux.HandleFunc("/api/auth/signup", auth.SignupHandler(dbConn))
	mux.HandleFunc("/api/auth/login", auth.LoginHandler(dbConn))
	mux.HandleFunc("/api/auth/logout", auth.LogoutHandler(dbConn))
	mux.HandleFunc("/api/auth/me", auth.RequireUser(dbConn, auth.MeHandler(dbConn)))

	mux.HandleFunc("/api/stocks", auth.RequireUser(dbConn, stock.StocksHandler(dbConn)))
	mux.HandleFunc("/api/stocks/update", auth.RequireUser(dbConn, stock.UpdateStockHandler(dbConn)))
	mux.HandleFunc("/api/stocks/update_count", auth.RequireUser(dbConn, stock.UpdateCountHandler(dbConn)))
	mux.HandleFunc("/api/stocks/delete", auth.RequireUser(dbConn, stock.DeleteStockHandler(dbConn)))
	mux.HandleFunc("/api/stocks/metrics", auth.RequireUser(dbConn, stock.MetricsHandler(dbConn)))
	mux.HandleFunc("/api/stocks/export_csv", auth.RequireUser(dbConn, stock.ExportStocksCSVHandler(dbConn)))
	mux.HandleFunc("/api/stocks/import_csv", auth.RequireUser(dbConn, stock.ImportStocksCSVHandler(dbConn)))

	mux.HandleFunc("/api/chat", auth.RequireUser(dbConn, chat.PostMessageHandler(dbConn, orch)))
	mux.HandleFunc("/api/chat/history", auth.RequireUser(dbConn, chat.HistoryHandler(dbConn)))
	mux.HandleFunc("/api/chat/clear", auth.RequireUser(dbConn, chat.ClearHandler(dbConn)))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
