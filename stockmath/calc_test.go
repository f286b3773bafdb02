package stockmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingDays(t *testing.T) {
	t.Run("通常計算", func(t *testing.T) {
		got := RemainingDays(300, 30, 2)
		require.NotNil(t, got)
		assert.Equal(t, 20, *got)
	})

	t.Run("端数は切り捨て", func(t *testing.T) {
		got := RemainingDays(250, 50, 1.5)
		require.NotNil(t, got)
		assert.Equal(t, 7, *got)
	})

	t.Run("使用量0はnil", func(t *testing.T) {
		assert.Nil(t, RemainingDays(300, 0, 2))
		assert.Nil(t, RemainingDays(500, 0, 10))
	})

	t.Run("使用量が負でもnil", func(t *testing.T) {
		assert.Nil(t, RemainingDays(300, -10, 2))
	})

	t.Run("袋数0は0日", func(t *testing.T) {
		got := RemainingDays(300, 30, 0)
		require.NotNil(t, got)
		assert.Equal(t, 0, *got)
	})
}

func TestRemainingDaysOrZero(t *testing.T) {
	assert.Equal(t, 20, RemainingDaysOrZero(300, 30, 2))
	// 消費ペース不明（nil）は0日に丸める
	assert.Equal(t, 0, RemainingDaysOrZero(300, 0, 2))
	assert.Equal(t, 0, RemainingDaysOrZero(300, 30, 0))
	// 端数のある使用量でも切り捨ての整数日
	assert.Equal(t, 13, RemainingDaysOrZero(200, 45, 3))
}

func TestStatusEmoji(t *testing.T) {
	threshold := 7

	assert.Equal(t, "🔴", StatusEmoji(300, 30, 0, &threshold))
	// 残3日 ≤ 閾値7日
	assert.Equal(t, "🟡", StatusEmoji(300, 100, 1, &threshold))
	// 残20日 > 閾値7日
	assert.Equal(t, "🟢", StatusEmoji(300, 30, 2, &threshold))
	// 閾値未設定なら在庫がある限り🟢
	assert.Equal(t, "🟢", StatusEmoji(300, 100, 1, nil))
}

func TestRequiredBags(t *testing.T) {
	t.Run("デフォルト13日分", func(t *testing.T) {
		assert.Equal(t, 2, RequiredBags(300, 30, DefaultTargetDays))
		assert.Equal(t, 3, RequiredBags(250, 50, DefaultTargetDays))
	})

	t.Run("目標日数指定", func(t *testing.T) {
		assert.Equal(t, 1, RequiredBags(300, 30, 7))
		assert.Equal(t, 3, RequiredBags(300, 30, 30))
	})

	t.Run("不正入力は0", func(t *testing.T) {
		assert.Equal(t, 0, RequiredBags(0, 30, DefaultTargetDays))
		assert.Equal(t, 0, RequiredBags(300, -30, DefaultTargetDays))
		assert.Equal(t, 0, RequiredBags(-300, 30, DefaultTargetDays))
	})
}

func TestShortfallBags(t *testing.T) {
	t.Run("不足あり", func(t *testing.T) {
		assert.Equal(t, 1.0, ShortfallBags(300, 30, 1, DefaultTargetDays))
	})

	t.Run("余剰は0（負にならない）", func(t *testing.T) {
		assert.Equal(t, 0.0, ShortfallBags(300, 30, 3, DefaultTargetDays))
		assert.Equal(t, 0.0, ShortfallBags(300, 30, 100, DefaultTargetDays))
	})

	t.Run("必要袋数との整合", func(t *testing.T) {
		cases := []struct {
			weight, usage, count float64
		}{
			{300, 30, 0}, {300, 30, 1.5}, {250, 50, 2}, {500, 10, 0.5}, {0, 30, 1},
		}
		for _, c := range cases {
			required := float64(RequiredBags(c.weight, c.usage, DefaultTargetDays))
			want := required - c.count
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, ShortfallBags(c.weight, c.usage, c.count, DefaultTargetDays))
		}
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2", FormatNumber(2, 1))
	assert.Equal(t, "1.5", FormatNumber(1.5, 1))
	assert.Equal(t, "2.5", FormatNumber(2.50, 1))
	assert.Equal(t, "3", FormatNumber(3.04, 1))
	assert.Equal(t, "1k+", FormatNumber(1000, 1))
	assert.Equal(t, "2k+", FormatNumber(2500, 1))
}

func TestValidateStockData(t *testing.T) {
	t.Run("正常データ", func(t *testing.T) {
		ok, errs := ValidateStockData("ブロッコリー", 300, 30, 2)
		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("名前なし", func(t *testing.T) {
		ok, errs := ValidateStockData("  ", 300, 30, 2)
		assert.False(t, ok)
		assert.Contains(t, errs, "野菜名が必要です")
	})

	t.Run("複数エラー", func(t *testing.T) {
		ok, errs := ValidateStockData("", 0, -1, -1)
		assert.False(t, ok)
		assert.Len(t, errs, 4)
	})

	t.Run("使用量0は許容", func(t *testing.T) {
		ok, _ := ValidateStockData("にんじん", 300, 0, 0)
		assert.True(t, ok)
	})
}
