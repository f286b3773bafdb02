package chat

import "github.com/agnivade/levenshtein"

// 提案として出す編集距離の上限。これ以上離れた名前は候補にしません。
const maxSuggestionDistance = 2

// NearestStockName は曖昧マッチに失敗した入力に対して、編集距離が最も近い
// 在庫名を返します。十分近い候補がなければ空文字を返します。
func NearestStockName(input string, names []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1

	for _, name := range names {
		d := levenshtein.ComputeDistance(input, name)
		if d < bestDistance {
			bestDistance = d
			best = name
		}
	}

	return best
}
