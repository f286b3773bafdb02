package intent

import (
	"math"

	"vegstock/model"
)

// ValidateAmount は操作対象の数量をチェックします。
// 上限値（設定100袋・増減50袋）は誤入力や誤解析への防波堤で、業務ルールではありません。
func ValidateAmount(amount float64, operation model.Operation) model.AmountValidation {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.AmountValidation{IsValid: false, Error: "数値が正しくありません"}
	}

	if amount < 0 {
		return model.AmountValidation{IsValid: false, Error: "負の値は指定できません"}
	}

	if operation == model.OpSet && amount > 100 {
		return model.AmountValidation{
			IsValid: false,
			Error:   "在庫数が大きすぎます（100袋以下にしてください）",
		}
	}

	if (operation == model.OpAdd || operation == model.OpSubtract) && amount > 50 {
		return model.AmountValidation{
			IsValid: false,
			Error:   "一度に変更できる数量が大きすぎます（50袋以下にしてください）",
		}
	}

	return model.AmountValidation{IsValid: true}
}
