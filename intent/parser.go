package intent

import (
	"regexp"
	"strconv"
	"strings"

	"vegstock/model"
)

// operationRule はインテント解析の1ルールです。先頭から順に評価し、
// 最初にマッチしたルールが勝ちます（並び順がそのまま優先順位です）。
type operationRule struct {
	re *regexp.Regexp
	op model.Operation
}

var operationRules = []operationRule{
	// 追加パターン
	{regexp.MustCompile(`(.+?)を(\d+(?:\.\d+)?)袋?追加`), model.OpAdd},
	{regexp.MustCompile(`(.+?)(\d+(?:\.\d+)?)袋追加`), model.OpAdd},
	{regexp.MustCompile(`(.+?)を(\d+(?:\.\d+)?)個?足す`), model.OpAdd},
	{regexp.MustCompile(`(.+?)(\d+(?:\.\d+)?)袋?足す`), model.OpAdd},
	{regexp.MustCompile(`(.+?)を(\d+(?:\.\d+)?)袋?プラス`), model.OpAdd},

	// 減算パターン
	{regexp.MustCompile(`(.+?)を?(\d+(?:\.\d+)?)袋?減らす`), model.OpSubtract},
	{regexp.MustCompile(`(.+?)(\d+(?:\.\d+)?)袋?減らす`), model.OpSubtract},
	{regexp.MustCompile(`(.+?)を?(\d+(?:\.\d+)?)袋?使った`), model.OpSubtract},
	{regexp.MustCompile(`(.+?)(\d+(?:\.\d+)?)袋?使った`), model.OpSubtract},
	{regexp.MustCompile(`(.+?)を?(\d+(?:\.\d+)?)袋?マイナス`), model.OpSubtract},

	// 設定パターン
	{regexp.MustCompile(`(.+?)を?(\d+(?:\.\d+)?)袋?に設定`), model.OpSet},
	{regexp.MustCompile(`(.+?)(\d+(?:\.\d+)?)袋?に設定`), model.OpSet},
	{regexp.MustCompile(`(.+?)の在庫を?(\d+(?:\.\d+)?)袋?にする`), model.OpSet},

	// 新規作成パターン（数量なし）
	{regexp.MustCompile(`(.+?)を?新規追加`), model.OpCreate},
	{regexp.MustCompile(`(.+?)を?登録`), model.OpCreate},
	{regexp.MustCompile(`新しく(.+?)を?追加`), model.OpCreate},
}

var queryRules = []*regexp.Regexp{
	regexp.MustCompile(`(.+?)の在庫は?`),
	regexp.MustCompile(`(.+?)は?何袋`),
	regexp.MustCompile(`(.+?)の残り`),
	regexp.MustCompile(`(.+?)の状況`),
	regexp.MustCompile(`在庫確認`),
	regexp.MustCompile(`在庫状況`),
}

// Parse はユーザー発言からインテントを解析します。
// どのルールにもマッチしない入力は general_chat に落ちるだけで、エラーにはなりません。
func Parse(input string) model.StockIntent {
	normalized := strings.ToLower(strings.TrimSpace(input))

	// 操作パターンをチェック
	for _, rule := range operationRules {
		m := rule.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}

		stockName := strings.TrimSpace(m[1])
		if stockName == "" {
			continue
		}

		if rule.op == model.OpCreate {
			return model.StockIntent{
				Type:         model.IntentStockOperation,
				Operation:    rule.op,
				StockName:    stockName,
				Confidence:   0.9,
				OriginalText: input,
			}
		}

		// 数量が0や解析不能の場合は操作として成立しないので後続ルールに回す
		amount, err := strconv.ParseFloat(m[2], 64)
		if err != nil || amount <= 0 {
			continue
		}

		return model.StockIntent{
			Type:         model.IntentStockOperation,
			Operation:    rule.op,
			StockName:    stockName,
			Amount:       &amount,
			Confidence:   0.9,
			OriginalText: input,
		}
	}

	// 照会パターンをチェック
	for _, re := range queryRules {
		m := re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}

		stockName := ""
		if len(m) > 1 {
			stockName = strings.TrimSpace(m[1])
		}

		return model.StockIntent{
			Type:         model.IntentStockQuery,
			StockName:    stockName,
			Confidence:   0.8,
			OriginalText: input,
		}
	}

	// 一般的な会話
	return model.StockIntent{
		Type:         model.IntentGeneralChat,
		Confidence:   0.5,
		OriginalText: input,
	}
}
