package intent

import "strings"

// FuzzyMatchStockName は野菜名の曖昧マッチングを行います。
// 完全一致 → 部分一致（双方向） → ひらがな・カタカナ同一視での一致、の順に
// 試し、どれもマッチしなければ空文字を返します。候補は入力順に評価するため、
// 複数マッチする場合は先頭の候補が勝ちます。
func FuzzyMatchStockName(input string, stockNames []string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))

	// 空文字は部分一致で何にでもマッチしてしまうので先に弾く
	if normalized == "" {
		return ""
	}

	// 完全一致
	for _, name := range stockNames {
		if strings.ToLower(name) == normalized {
			return name
		}
	}

	// 部分一致
	for _, name := range stockNames {
		lower := strings.ToLower(name)
		if strings.Contains(lower, normalized) || strings.Contains(normalized, lower) {
			return name
		}
	}

	// ひらがな・カタカナ変換を考慮した一致
	hiraganaInput := toHiragana(normalized)
	katakanaInput := toKatakana(normalized)

	for _, name := range stockNames {
		lower := strings.ToLower(name)
		hiraganaName := toHiragana(lower)
		katakanaName := toKatakana(lower)

		if hiraganaName == hiraganaInput ||
			katakanaName == katakanaInput ||
			strings.Contains(hiraganaName, hiraganaInput) ||
			strings.Contains(katakanaName, katakanaInput) {
			return name
		}
	}

	return ""
}

// toHiragana はカタカナ（U+30A1〜U+30F6）をひらがなに変換します。
func toHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x30A1 && r <= 0x30F6 {
			return r - 0x60
		}
		return r
	}, s)
}

// toKatakana はひらがな（U+3041〜U+3096）をカタカナに変換します。
func toKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x3041 && r <= 0x3096 {
			return r + 0x60
		}
		return r
	}, s)
}
