package intent

import (
	"regexp"
	"strconv"
	"strings"

	"vegstock/model"
)

var (
	creationNameRe = regexp.MustCompile(`(.+?)を?(?:新規追加|登録|追加)`)
	weightRe       = regexp.MustCompile(`(\d+)g|(\d+)グラム`)
	usageRe        = regexp.MustCompile(`(?:1日|毎日)(\d+)g|使用量(\d+)g`)
	countRe        = regexp.MustCompile(`(\d+(?:\.\d+)?)袋`)
	thresholdRe    = regexp.MustCompile(`(\d+)日で?アラート|アラート(\d+)日`)
)

// ParseCreationData は新規登録発言から在庫データを抽出します。
// 登録フレーズと野菜名が取れない場合はnilを返します。
// 重量・使用量・袋数・閾値はそれぞれ独立して抽出するため、元の文字列
// （小文字化していないもの）を走査します。
func ParseCreationData(input string) *model.ParsedStockData {
	normalized := strings.ToLower(strings.TrimSpace(input))

	nameMatch := creationNameRe.FindStringSubmatch(normalized)
	if nameMatch == nil {
		return nil
	}
	name := strings.TrimSpace(nameMatch[1])
	if name == "" {
		return nil
	}

	data := &model.ParsedStockData{Name: name}

	if m := weightRe.FindStringSubmatch(input); m != nil {
		if v, err := strconv.Atoi(firstNonEmpty(m[1], m[2])); err == nil {
			data.TotalWeightG = &v
		}
	}

	if m := usageRe.FindStringSubmatch(input); m != nil {
		if v, err := strconv.Atoi(firstNonEmpty(m[1], m[2])); err == nil {
			data.DailyUsageG = &v
		}
	}

	if m := countRe.FindStringSubmatch(input); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			data.StockCountBag = &v
		}
	}

	if m := thresholdRe.FindStringSubmatch(input); m != nil {
		if v, err := strconv.Atoi(firstNonEmpty(m[1], m[2])); err == nil {
			data.ThresholdDays = &v
		}
	}

	return data
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
