package model

// Stock は冷凍野菜の在庫1品目を表します。
type Stock struct {
	ID            string  `db:"id" json:"id"`
	UserID        string  `db:"user_id" json:"-"`
	Name          string  `db:"name" json:"name"`
	TotalWeightG  float64 `db:"total_weight_g" json:"totalWeightG"`
	DailyUsageG   float64 `db:"daily_usage_g" json:"dailyUsageG"`
	StockCountBag float64 `db:"stock_count_bag" json:"stockCountBag"`
	ThresholdDays *int    `db:"threshold_days" json:"thresholdDays"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt"`
}

// StockInput はフロントエンドから受け取る在庫の登録・更新データです。
type StockInput struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TotalWeightG  float64 `json:"totalWeightG"`
	DailyUsageG   float64 `json:"dailyUsageG"`
	StockCountBag float64 `json:"stockCountBag"`
	ThresholdDays *int    `json:"thresholdDays"`
}

// StockMetrics は在庫1品目の消費予測指標です（チャート表示用）。
type StockMetrics struct {
	Stock         Stock   `json:"stock"`
	RemainingDays *int    `json:"remainingDays"`
	RequiredBags  int     `json:"requiredBags"`
	ShortfallBags float64 `json:"shortfallBags"`
	Status        string  `json:"status"` // "out" | "low" | "ok"
}
