package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyMatchStockName(t *testing.T) {
	t.Run("完全一致", func(t *testing.T) {
		got := FuzzyMatchStockName("ブロッコリー", []string{"ブロッコリー", "にんじん"})
		assert.Equal(t, "ブロッコリー", got)
	})

	t.Run("大文字小文字は無視", func(t *testing.T) {
		got := FuzzyMatchStockName("BROCCOLI", []string{"broccoli", "carrot"})
		assert.Equal(t, "broccoli", got)
	})

	t.Run("部分一致（入力が候補の一部）", func(t *testing.T) {
		got := FuzzyMatchStockName("broc", []string{"broccoli", "carrot"})
		assert.Equal(t, "broccoli", got)
	})

	t.Run("部分一致（候補が入力の一部）", func(t *testing.T) {
		got := FuzzyMatchStockName("冷凍ブロッコリー", []string{"ブロッコリー"})
		assert.Equal(t, "ブロッコリー", got)
	})

	t.Run("ひらがな入力でカタカナ候補にマッチ", func(t *testing.T) {
		got := FuzzyMatchStockName("ぶろっこりー", []string{"ブロッコリー", "にんじん"})
		assert.Equal(t, "ブロッコリー", got)
	})

	t.Run("カタカナ入力でひらがな候補にマッチ", func(t *testing.T) {
		got := FuzzyMatchStockName("ニンジン", []string{"ブロッコリー", "にんじん"})
		assert.Equal(t, "にんじん", got)
	})

	t.Run("空文字はマッチしない", func(t *testing.T) {
		assert.Equal(t, "", FuzzyMatchStockName("", []string{"ブロッコリー"}))
		assert.Equal(t, "", FuzzyMatchStockName("   ", []string{"ブロッコリー"}))
	})

	t.Run("マッチなし", func(t *testing.T) {
		assert.Equal(t, "", FuzzyMatchStockName("kiwi", []string{"broccoli"}))
		assert.Equal(t, "", FuzzyMatchStockName("キウイ", []string{"ブロッコリー", "にんじん"}))
	})

	t.Run("複数候補は入力順で先頭が勝つ", func(t *testing.T) {
		got := FuzzyMatchStockName("ー", []string{"ブロッコリー", "カリフラワー"})
		assert.Equal(t, "ブロッコリー", got)

		got = FuzzyMatchStockName("ー", []string{"カリフラワー", "ブロッコリー"})
		assert.Equal(t, "カリフラワー", got)
	})

	t.Run("候補なし", func(t *testing.T) {
		assert.Equal(t, "", FuzzyMatchStockName("ブロッコリー", nil))
	})
}

func TestKanaConversion(t *testing.T) {
	assert.Equal(t, "ぶろっこりー", toHiragana("ブロッコリー"))
	assert.Equal(t, "ブロッコリー", toKatakana("ぶろっこりー"))

	// 変換範囲外の文字はそのまま
	assert.Equal(t, "abc123漢字", toHiragana("abc123漢字"))
	assert.Equal(t, "abc123漢字", toKatakana("abc123漢字"))
}
