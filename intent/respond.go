package intent

import (
	"fmt"
	"strconv"

	"vegstock/model"
)

// ResponseMessage はインテントと処理結果からユーザー向けの応答文を組み立てます。
// stockName には曖昧マッチ後の正式名を渡します（空ならインテントの生の名前を使います）。
func ResponseMessage(it model.StockIntent, success bool, stockName string, currentAmount *float64) string {
	name := stockName
	if name == "" {
		name = it.StockName
	}

	if !success {
		switch it.Type {
		case model.IntentStockOperation:
			opText := "設定"
			switch it.Operation {
			case model.OpAdd:
				opText = "追加"
			case model.OpSubtract:
				opText = "減算"
			}
			return fmt.Sprintf("申し訳ありません。%sの%sに失敗しました。", it.StockName, opText)
		case model.IntentStockQuery:
			return fmt.Sprintf("申し訳ありません。%sの情報を取得できませんでした。", it.StockName)
		default:
			return "申し訳ありません。処理に失敗しました。"
		}
	}

	switch it.Type {
	case model.IntentStockOperation:
		opText := "更新しました"
		switch it.Operation {
		case model.OpAdd:
			opText = "追加しました"
		case model.OpSubtract:
			opText = "減らしました"
		case model.OpSet:
			opText = "設定しました"
		}

		currentText := ""
		if currentAmount != nil {
			currentText = fmt.Sprintf("（現在: %s袋）", formatAmount(*currentAmount))
		}

		amountText := ""
		if it.Amount != nil {
			amountText = formatAmount(*it.Amount)
		}

		return fmt.Sprintf("%sを%s袋%s%s", name, amountText, opText, currentText)

	case model.IntentStockQuery:
		if currentAmount != nil {
			return fmt.Sprintf("%sの在庫は%s袋です", name, formatAmount(*currentAmount))
		}
		return fmt.Sprintf("%sの在庫情報が見つかりませんでした", name)

	default:
		return "ご質問ありがとうございます。在庫に関することでしたら、「ブロッコリー 2袋追加」のように話しかけてください。"
	}
}

// formatAmount は袋数を余計な末尾ゼロなしで文字列化します（2→"2"、1.5→"1.5"）。
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
