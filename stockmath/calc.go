package stockmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTargetDays は必要袋数計算の目標日数のデフォルト値です。
const DefaultTargetDays = 13

// RemainingDays は残日数を計算します。
// dailyUsageG が0以下の場合は消費ペース不明としてnilを返します（エラーではありません）。
func RemainingDays(totalWeightG, dailyUsageG, stockCountBag float64) *int {
	if dailyUsageG <= 0 {
		return nil
	}

	totalStockG := totalWeightG * stockCountBag
	days := int(math.Floor(totalStockG / dailyUsageG))
	return &days
}

// RemainingDaysOrZero は表示用の残日数です。消費ペース不明（nil）や
// 負の結果は0日に丸めます。チャット要約とAIプロンプトの両方で使います。
func RemainingDaysOrZero(totalWeightG, dailyUsageG, stockCountBag float64) int {
	days := RemainingDays(totalWeightG, dailyUsageG, stockCountBag)
	if days == nil || *days < 0 {
		return 0
	}
	return *days
}

// StatusEmoji は在庫1品目のステータス絵文字を返します。
// 在庫切れは🔴、残日数が閾値以下は🟡、それ以外は🟢です。
func StatusEmoji(totalWeightG, dailyUsageG, stockCountBag float64, thresholdDays *int) string {
	if stockCountBag == 0 {
		return "🔴"
	}
	if thresholdDays != nil && RemainingDaysOrZero(totalWeightG, dailyUsageG, stockCountBag) <= *thresholdDays {
		return "🟡"
	}
	return "🟢"
}

// RequiredBags は目標日数分をまかなうのに必要な袋数を計算します。
// 残日数と違い「目標日数以上を確保できる袋数」なので切り上げです。
func RequiredBags(totalWeightG, dailyUsageG float64, targetDays int) int {
	if totalWeightG <= 0 || dailyUsageG <= 0 {
		return 0
	}

	totalRequiredG := dailyUsageG * float64(targetDays)
	return int(math.Ceil(totalRequiredG / totalWeightG))
}

// ShortfallBags は不足袋数を計算します。余剰がある場合は0を返します。
func ShortfallBags(totalWeightG, dailyUsageG, stockCountBag float64, targetDays int) float64 {
	required := RequiredBags(totalWeightG, dailyUsageG, targetDays)
	return math.Max(0, float64(required)-stockCountBag)
}

// FormatNumber は数値を表示用にフォーマットします。1000以上は "1k+" 形式になります。
func FormatNumber(value float64, precision int) string {
	if value >= 1000 {
		return fmt.Sprintf("%dk+", int(math.Floor(value/1000)))
	}

	rounded := strconv.FormatFloat(value, 'f', precision, 64)
	f, _ := strconv.ParseFloat(rounded, 64)
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ValidateStockData は在庫データの妥当性をチェックし、エラーメッセージの一覧を返します。
func ValidateStockData(name string, totalWeightG, dailyUsageG, stockCountBag float64) (bool, []string) {
	var errors []string

	if strings.TrimSpace(name) == "" {
		errors = append(errors, "野菜名が必要です")
	}
	if totalWeightG <= 0 {
		errors = append(errors, "1袋の重量は正の値である必要があります")
	}
	if dailyUsageG < 0 {
		errors = append(errors, "1日の使用量は0以上である必要があります")
	}
	if stockCountBag < 0 {
		errors = append(errors, "袋数は0以上である必要があります")
	}

	return len(errors) == 0, errors
}
