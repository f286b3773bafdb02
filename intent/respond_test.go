package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vegstock/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestResponseMessage_OperationSuccess(t *testing.T) {
	it := model.StockIntent{
		Type:      model.IntentStockOperation,
		Operation: model.OpAdd,
		StockName: "ぶろっこりー",
		Amount:    floatPtr(2),
	}

	got := ResponseMessage(it, true, "ブロッコリー", floatPtr(5))
	assert.Equal(t, "ブロッコリーを2袋追加しました（現在: 5袋）", got)

	// 現在量なしなら括弧書きは付かない
	got = ResponseMessage(it, true, "ブロッコリー", nil)
	assert.Equal(t, "ブロッコリーを2袋追加しました", got)

	// 正式名が空ならインテントの生の名前を使う
	got = ResponseMessage(it, true, "", floatPtr(5))
	assert.Equal(t, "ぶろっこりーを2袋追加しました（現在: 5袋）", got)
}

func TestResponseMessage_OperationVerbs(t *testing.T) {
	base := model.StockIntent{
		Type:      model.IntentStockOperation,
		StockName: "にんじん",
		Amount:    floatPtr(1.5),
	}

	subtract := base
	subtract.Operation = model.OpSubtract
	assert.Equal(t, "にんじんを1.5袋減らしました", ResponseMessage(subtract, true, "", nil))

	set := base
	set.Operation = model.OpSet
	assert.Equal(t, "にんじんを1.5袋設定しました", ResponseMessage(set, true, "", nil))
}

func TestResponseMessage_OperationFailure(t *testing.T) {
	it := model.StockIntent{
		Type:      model.IntentStockOperation,
		Operation: model.OpAdd,
		StockName: "ブロッコリー",
		Amount:    floatPtr(2),
	}
	assert.Equal(t, "申し訳ありません。ブロッコリーの追加に失敗しました。", ResponseMessage(it, false, "", nil))

	it.Operation = model.OpSubtract
	assert.Equal(t, "申し訳ありません。ブロッコリーの減算に失敗しました。", ResponseMessage(it, false, "", nil))

	it.Operation = model.OpSet
	assert.Equal(t, "申し訳ありません。ブロッコリーの設定に失敗しました。", ResponseMessage(it, false, "", nil))
}

func TestResponseMessage_Query(t *testing.T) {
	it := model.StockIntent{
		Type:      model.IntentStockQuery,
		StockName: "ブロッコリー",
	}

	assert.Equal(t, "ブロッコリーの在庫は3袋です", ResponseMessage(it, true, "", floatPtr(3)))
	assert.Equal(t, "ブロッコリーの在庫情報が見つかりませんでした", ResponseMessage(it, true, "", nil))
	assert.Equal(t, "申し訳ありません。ブロッコリーの情報を取得できませんでした。", ResponseMessage(it, false, "", nil))
}

func TestResponseMessage_GeneralChat(t *testing.T) {
	it := model.StockIntent{Type: model.IntentGeneralChat}
	assert.Equal(t,
		"ご質問ありがとうございます。在庫に関することでしたら、「ブロッコリー 2袋追加」のように話しかけてください。",
		ResponseMessage(it, true, "", nil))
	assert.Equal(t, "申し訳ありません。処理に失敗しました。", ResponseMessage(it, false, "", nil))
}
