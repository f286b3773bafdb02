package model

// IntentType はチャット発言の分類です。
type IntentType string

const (
	IntentStockOperation IntentType = "stock_operation"
	IntentStockQuery     IntentType = "stock_query"
	IntentGeneralChat    IntentType = "general_chat"
)

// Operation は在庫操作の種別です。
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpSet      Operation = "set"
	OpCreate   Operation = "create"
)

// StockIntent はユーザー発言1件から解析したインテントです。
// 永続化はせず、1ターンの処理の中だけで使います。
type StockIntent struct {
	Type         IntentType `json:"type"`
	Operation    Operation  `json:"operation,omitempty"`
	StockName    string     `json:"stockName,omitempty"`
	Amount       *float64   `json:"amount,omitempty"`
	Confidence   float64    `json:"confidence"`
	OriginalText string     `json:"originalText"`
}

// ParsedStockData は新規登録発言から抽出した在庫データです。
// 名前以外の項目はそれぞれ独立に抽出され、欠けていても構いません。
type ParsedStockData struct {
	Name          string   `json:"name"`
	TotalWeightG  *int     `json:"totalWeightG,omitempty"`
	DailyUsageG   *int     `json:"dailyUsageG,omitempty"`
	StockCountBag *float64 `json:"stockCountBag,omitempty"`
	ThresholdDays *int     `json:"thresholdDays,omitempty"`
}

// AmountValidation は数量チェックの結果です。
type AmountValidation struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// ChatMessage はチャット履歴1件です。
type ChatMessage struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"-"`
	Role      string `db:"role" json:"role"` // "user" | "assistant"
	Content   string `db:"content" json:"content"`
	Success   *bool  `db:"success" json:"success,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
