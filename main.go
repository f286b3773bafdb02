package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"vegstock/chat"
	"vegstock/config"
	"vegstock/gemini"
	"vegstock/loader"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
		cfg = config.GetConfig()
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	var assistant chat.Assistant
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("WARN: Failed to initialize Gemini client: %v. Chat will use fixed responses.", err)
		} else {
			assistant = client
			log.Println("Gemini client initialized.")
		}
	} else {
		log.Println("WARN: Gemini API key not set. Chat will use fixed responses.")
	}

	mux := http.NewServeMux()

	if info, err := os.Stat("static"); err == nil && info.IsDir() {
		mux.Handle("/static/", http.StripPrefix("/static/",
			http.FileServer(http.Dir("./static"))))
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			http.ServeFile(w, r, "static/index.html")
		})
	} else {
		log.Println("WARN: 'static' directory not found. Serving API only.")
	}

	SetupRoutes(mux, dbConn, assistant)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on http://localhost%s", addr)

	openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Port))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
