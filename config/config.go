package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	Port            int    `json:"port"`
	DatabasePath    string `json:"databasePath"`
	GeminiAPIKey    string `json:"geminiAPIKey"`
	GeminiModel     string `json:"geminiModel"`
	TargetStockDays int    `json:"targetStockDays"`
	SessionTTLHours int    `json:"sessionTTLHours"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./vegstock_config.json"

func applyDefaults(c *Config) {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./vegstock.db"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-1.5-flash"
	}
	if c.TargetStockDays == 0 {
		c.TargetStockDays = 13
	}
	if c.SessionTTLHours == 0 {
		c.SessionTTLHours = 336 // 14日
	}
	// APIキーは環境変数を優先（設定ファイルに書かずに済むように）
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		var defaults Config
		applyDefaults(&defaults)
		cfg = defaults
		if os.IsNotExist(err) {
			return defaults, nil
		}
		// 読めないときもデフォルトで起動は続ける
		return defaults, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		var defaults Config
		applyDefaults(&defaults)
		cfg = defaults
		return defaults, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
