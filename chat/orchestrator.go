package chat

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"vegstock/intent"
	"vegstock/model"
	"vegstock/stockmath"
)

// 新規登録時のデフォルト在庫データ。詳細は在庫一覧から編集してもらう前提の初期値です。
const (
	defaultTotalWeightG  = 300
	defaultDailyUsageG   = 30
	defaultStockCountBag = 0
	defaultThresholdDays = 7
)

// StockStore はオーケストレーターが必要とする在庫操作の最小セットです。
type StockStore interface {
	List(userID string) ([]model.Stock, error)
	Create(stock *model.Stock) error
	UpdateCount(id, userID string, newCount float64) error
}

// Assistant は自由会話を委譲する外部AIアシスタントです。
// 呼び出し失敗はオーケストレーター側で定型応答にフォールバックします。
type Assistant interface {
	GenerateStockResponse(ctx context.Context, userMessage string, stocks []model.Stock) (string, error)
	GenerateStockAnalysis(ctx context.Context, stocks []model.Stock) (string, error)
	GenerateShoppingList(ctx context.Context, stocks []model.Stock) (string, error)
}

// Orchestrator はチャット1ターンの処理を担います。インテント解析から
// 名前解決・数量チェック・在庫更新・応答文生成までを順に実行します。
type Orchestrator struct {
	store     StockStore
	assistant Assistant // nilの場合は定型応答のみで動作する
}

func NewOrchestrator(store StockStore, assistant Assistant) *Orchestrator {
	return &Orchestrator{store: store, assistant: assistant}
}

// TurnResult はチャット1ターンの結果です。
type TurnResult struct {
	Message string            `json:"message"`
	Success bool              `json:"success"`
	Intent  model.StockIntent `json:"intent"`
}

// HandleMessage はユーザー発言1件を処理します。
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, text string) TurnResult {
	it := intent.Parse(text)

	var message string
	var success bool

	switch it.Type {
	case model.IntentStockOperation:
		message, success = o.handleStockOperation(it, userID)
	case model.IntentStockQuery:
		message, success = o.handleStockQuery(it, userID)
	default:
		message = o.handleGeneralChat(ctx, userID, text)
		success = true
	}

	return TurnResult{Message: message, Success: success, Intent: it}
}

func (o *Orchestrator) handleStockOperation(it model.StockIntent, userID string) (string, bool) {
	if it.StockName == "" {
		return "野菜名が指定されていません。", false
	}

	stocks, err := o.store.List(userID)
	if err != nil {
		log.Printf("Failed to list stocks for user %s: %v", userID, err)
		return intent.ResponseMessage(it, false, "", nil), false
	}

	names := stockNames(stocks)
	matchedName := intent.FuzzyMatchStockName(it.StockName, names)
	targetStock := findStock(stocks, matchedName)

	// 新規作成
	if it.Operation == model.OpCreate {
		if targetStock != nil {
			return fmt.Sprintf("%sは既に登録されています。", matchedName), false
		}

		newStock := model.Stock{
			UserID:        userID,
			Name:          it.StockName,
			TotalWeightG:  defaultTotalWeightG,
			DailyUsageG:   defaultDailyUsageG,
			StockCountBag: defaultStockCountBag,
			ThresholdDays: intPtr(defaultThresholdDays),
		}

		// 「◯◯を新規追加 300g 1日30g」のように詳細が添えられていれば反映する
		if data := intent.ParseCreationData(it.OriginalText); data != nil {
			if data.TotalWeightG != nil {
				newStock.TotalWeightG = float64(*data.TotalWeightG)
			}
			if data.DailyUsageG != nil {
				newStock.DailyUsageG = float64(*data.DailyUsageG)
			}
			if data.StockCountBag != nil {
				newStock.StockCountBag = *data.StockCountBag
			}
			if data.ThresholdDays != nil {
				newStock.ThresholdDays = data.ThresholdDays
			}
		}

		if err := o.store.Create(&newStock); err != nil {
			log.Printf("Failed to create stock %s: %v", it.StockName, err)
			return fmt.Sprintf("%sの登録に失敗しました。", it.StockName), false
		}
		return fmt.Sprintf("%sを新規登録しました。詳細設定は在庫一覧から編集してください。", it.StockName), true
	}

	// 既存在庫の操作
	if targetStock == nil {
		return notFoundMessage(it.StockName, names, true), false
	}

	if it.Amount == nil {
		return "数量が指定されていません。", false
	}

	validation := intent.ValidateAmount(*it.Amount, it.Operation)
	if !validation.IsValid {
		return validation.Error, false
	}

	var newCount float64
	switch it.Operation {
	case model.OpAdd:
		newCount = targetStock.StockCountBag + *it.Amount
	case model.OpSubtract:
		newCount = math.Max(0, targetStock.StockCountBag-*it.Amount)
	case model.OpSet:
		newCount = *it.Amount
	default:
		return "不明な操作です。", false
	}

	err = o.store.UpdateCount(targetStock.ID, userID, newCount)
	if err != nil {
		log.Printf("Failed to update stock count for %s: %v", targetStock.ID, err)
	}
	success := err == nil
	return intent.ResponseMessage(it, success, matchedName, &newCount), success
}

func (o *Orchestrator) handleStockQuery(it model.StockIntent, userID string) (string, bool) {
	stocks, err := o.store.List(userID)
	if err != nil {
		log.Printf("Failed to list stocks for user %s: %v", userID, err)
		return intent.ResponseMessage(it, false, "", nil), false
	}

	// 名前なしは全体の在庫状況
	if it.StockName == "" {
		if len(stocks) == 0 {
			return "在庫データがありません。", true
		}

		lines := make([]string, 0, len(stocks))
		for _, s := range stocks {
			remaining := stockmath.RemainingDaysOrZero(s.TotalWeightG, s.DailyUsageG, s.StockCountBag)
			emoji := stockmath.StatusEmoji(s.TotalWeightG, s.DailyUsageG, s.StockCountBag, s.ThresholdDays)
			lines = append(lines, fmt.Sprintf("%s %s: %s袋 (%d日分)",
				emoji, s.Name, stockmath.FormatNumber(s.StockCountBag, 1), remaining))
		}
		return "現在の在庫状況:\n" + strings.Join(lines, "\n"), true
	}

	// 特定の野菜の照会
	names := stockNames(stocks)
	matchedName := intent.FuzzyMatchStockName(it.StockName, names)
	targetStock := findStock(stocks, matchedName)
	if targetStock == nil {
		return notFoundMessage(it.StockName, names, false), false
	}

	remaining := stockmath.RemainingDaysOrZero(targetStock.TotalWeightG, targetStock.DailyUsageG, targetStock.StockCountBag)
	message := intent.ResponseMessage(it, true, matchedName, &targetStock.StockCountBag)
	if remaining > 0 {
		message += fmt.Sprintf("（約%d日分）", remaining)
	}
	return message, true
}

func (o *Orchestrator) handleGeneralChat(ctx context.Context, userID, userMessage string) string {
	if o.assistant == nil {
		return fallbackResponse(userMessage)
	}

	stocks, err := o.store.List(userID)
	if err != nil {
		log.Printf("Failed to list stocks for user %s: %v", userID, err)
		stocks = nil
	}

	var response string
	switch {
	case strings.Contains(userMessage, "分析") || strings.Contains(userMessage, "アドバイス"):
		response, err = o.assistant.GenerateStockAnalysis(ctx, stocks)
	case strings.Contains(userMessage, "買い物") || strings.Contains(userMessage, "購入"):
		response, err = o.assistant.GenerateShoppingList(ctx, stocks)
	default:
		response, err = o.assistant.GenerateStockResponse(ctx, userMessage, stocks)
	}

	if err != nil {
		log.Printf("Assistant call failed: %v", err)
		return fallbackResponse(userMessage)
	}
	return response
}

// fallbackResponse はアシスタントが使えないときの定型応答です。
func fallbackResponse(userMessage string) string {
	if strings.Contains(userMessage, "こんにちは") || strings.Contains(userMessage, "はじめまして") {
		return "こんにちは！冷凍野菜の在庫管理をお手伝いします。「ブロッコリー 2袋追加」のように話しかけてください。"
	}
	if strings.Contains(userMessage, "ありがとう") {
		return "どういたしまして！他にも在庫管理でお困りのことがあれば、お気軽にお声かけください。"
	}
	return "ご質問ありがとうございます。在庫に関することでしたら、「ブロッコリー 2袋追加」や「在庫確認」のように話しかけてください。"
}

// notFoundMessage は名前解決に失敗したときのメッセージです。
// 編集距離の近い候補があれば「もしかして」を添えます。
func notFoundMessage(name string, names []string, withCreateHint bool) string {
	message := fmt.Sprintf("%sが見つかりません。", name)
	if suggestion := NearestStockName(name, names); suggestion != "" {
		message += fmt.Sprintf("（もしかして: %s？）", suggestion)
	}
	if withCreateHint {
		message += fmt.Sprintf("「%sを新規追加」で登録できます。", name)
	}
	return message
}

func stockNames(stocks []model.Stock) []string {
	names := make([]string, 0, len(stocks))
	for _, s := range stocks {
		names = append(names, s.Name)
	}
	return names
}

func findStock(stocks []model.Stock, name string) *model.Stock {
	if name == "" {
		return nil
	}
	for i := range stocks {
		if stocks[i].Name == name {
			return &stocks[i]
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }
