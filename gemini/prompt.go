package gemini

import (
	"fmt"
	"strings"

	"vegstock/model"
	"vegstock/stockmath"
)

func buildSystemPrompt(stocks []model.Stock) string {
	return fmt.Sprintf(`
あなたは「vegstock」という冷凍野菜ストック管理アプリの、フレンドリーで親切なAIアシスタントです。
ユーザーと自然な会話を行い、在庫管理を手伝ってください。

# あなたの役割
- ユーザーの入力を解釈し、在庫の追加、削除、数量変更などの操作を提案・実行します。
- 在庫状況に関する質問に答えます。（例：「ブロッコリーの残りは？」）
- ユーザーの入力が曖昧な場合は、明確にするための質問をしてください。
- ユーザーが野菜の在庫管理、料理、買い物と全く関係のない話題を始めた場合は、「私は野菜の在庫管理を専門としていますので、その件については詳しくありませんが、何か在庫のことでお困りですか？」のように、丁寧に会話を本題に戻してください。
- 回答は常に日本語で行ってください。

# 現在の在庫状況
%s

ユーザーの次のメッセージに回答してください：
`, formatStockSummary(stocks))
}

func buildAnalysisPrompt(stocks []model.Stock) string {
	return fmt.Sprintf(`冷凍野菜在庫の分析をお願いします。

【現在の在庫状況】
%s

【在庫切れ】
%s

【在庫少（閾値以下）】
%s

以下の観点で分析してください：
1. 在庫状況の総合評価
2. 注意が必要な野菜
3. 在庫管理の改善提案
4. 今後の購入計画のアドバイス

200文字程度で簡潔にまとめてください。`,
		formatStockSummary(stocks),
		formatItemList(outOfStockItems(stocks)),
		formatItemList(lowStockItems(stocks)))
}

func buildShoppingPrompt(stocks []model.Stock) string {
	return fmt.Sprintf(`現在の在庫状況から買い物リストを作成してください。

【在庫切れ】
%s

【在庫少（閾値以下）】
%s

【全在庫状況】
%s

以下の形式で買い物リストを作成してください：
- 優先度の高い順に並べる
- 推奨購入数量を含める
- 理由も簡潔に記載する

例：
🔴 ブロッコリー（2袋）- 在庫切れ
🟡 にんじん（1袋）- 残り2日分`,
		formatItemList(outOfStockItems(stocks)),
		formatItemList(lowStockItems(stocks)),
		formatStockSummary(stocks))
}

func formatStockSummary(stocks []model.Stock) string {
	if len(stocks) == 0 {
		return "在庫データがありません"
	}

	lines := make([]string, 0, len(stocks))
	for _, s := range stocks {
		lines = append(lines, fmt.Sprintf("- %s: %s袋 (%d日分) %s",
			s.Name,
			stockmath.FormatNumber(s.StockCountBag, 1),
			stockmath.RemainingDaysOrZero(s.TotalWeightG, s.DailyUsageG, s.StockCountBag),
			stockmath.StatusEmoji(s.TotalWeightG, s.DailyUsageG, s.StockCountBag, s.ThresholdDays)))
	}
	return strings.Join(lines, "\n")
}

func formatItemList(items []string) string {
	if len(items) == 0 {
		return "なし"
	}
	return strings.Join(items, ", ")
}

func lowStockItems(stocks []model.Stock) []string {
	var items []string
	for _, s := range stocks {
		if s.StockCountBag == 0 {
			continue
		}
		if s.ThresholdDays != nil && stockmath.RemainingDaysOrZero(s.TotalWeightG, s.DailyUsageG, s.StockCountBag) <= *s.ThresholdDays {
			items = append(items, s.Name)
		}
	}
	return items
}

func outOfStockItems(stocks []model.Stock) []string {
	var items []string
	for _, s := range stocks {
		if s.StockCountBag == 0 {
			items = append(items, s.Name)
		}
	}
	return items
}
