package stock

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"vegstock/auth"
	"vegstock/database"
	"vegstock/model"
	"vegstock/stockmath"
)

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportStocksCSVHandler は在庫一覧をCSVでダウンロードさせます。
// Excelでそのまま開けるようUTF-8 BOMを付けます。
func ExportStocksCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		stocks, err := database.GetStocksByUser(db, auth.UserID(r.Context()))
		if err != nil {
			log.Printf("Failed to list stocks for export: %v", err)
			http.Error(w, "在庫エクスポートに失敗しました。", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"野菜名", "1袋の重量(g)", "1日の使用量(g)", "袋数", "アラート日数"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, s := range stocks {
			threshold := ""
			if s.ThresholdDays != nil {
				threshold = strconv.Itoa(*s.ThresholdDays)
			}
			record := []string{
				quoteAll(s.Name),
				quoteAll(strconv.FormatFloat(s.TotalWeightG, 'f', -1, 64)),
				quoteAll(strconv.FormatFloat(s.DailyUsageG, 'f', -1, 64)),
				quoteAll(strconv.FormatFloat(s.StockCountBag, 'f', -1, 64)),
				quoteAll(threshold),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}

		filename := fmt.Sprintf("vegstock在庫(%s).csv", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

// ImportStocksCSVHandler はCSVから在庫を一括登録・更新します。
// UTF-8（BOMあり・なし）に加え、表計算ソフトが吐くShift_JISも受け付けます。
func ImportStocksCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "CSVファイルの読み取りに失敗: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		records, err := parseStockCSV(file)
		if err != nil {
			http.Error(w, "CSVファイルの解析に失敗: "+err.Error(), http.StatusBadRequest)
			return
		}

		userID := auth.UserID(r.Context())

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "データベーストランザクションの開始に失敗: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		imported := 0
		for i, rec := range records {
			ok, errs := stockmath.ValidateStockData(rec.Name, rec.TotalWeightG, rec.DailyUsageG, rec.StockCountBag)
			if !ok {
				http.Error(w, fmt.Sprintf("%d行目: %s", i+2, strings.Join(errs, "、")), http.StatusBadRequest)
				return
			}
			if err := database.UpsertStockByNameInTx(tx, userID, &rec); err != nil {
				log.Printf("Failed to upsert stock %s: %v", rec.Name, err)
				http.Error(w, "在庫インポートに失敗しました。", http.StatusInternalServerError)
				return
			}
			imported++
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "トランザクションのコミットに失敗: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"imported": %d}`, imported)
	}
}

// parseStockCSV はアップロードされたCSVを在庫レコードに変換します。
// 1行目はヘッダーとして読み飛ばします。
func parseStockCSV(r io.Reader) ([]model.Stock, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	// BOM除去
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	// UTF-8として不正ならShift_JISとみなしてデコード
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode Shift_JIS: %w", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records []model.Stock
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line: %w", err)
		}

		line++
		if line == 1 {
			continue // ヘッダー行
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("%d行目: 列が不足しています（野菜名,重量,使用量,袋数[,アラート日数]）", line)
		}

		name := strings.TrimSpace(record[0])
		weight, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%d行目: 重量の数値が不正です", line)
		}
		usage, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("%d行目: 使用量の数値が不正です", line)
		}
		count, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("%d行目: 袋数の数値が不正です", line)
		}

		var threshold *int
		if len(record) >= 5 && strings.TrimSpace(record[4]) != "" {
			v, err := strconv.Atoi(strings.TrimSpace(record[4]))
			if err != nil {
				return nil, fmt.Errorf("%d行目: アラート日数の数値が不正です", line)
			}
			threshold = &v
		}

		records = append(records, model.Stock{
			Name:          name,
			TotalWeightG:  weight,
			DailyUsageG:   usage,
			StockCountBag: count,
			ThresholdDays: threshold,
		})
	}

	return records, nil
}
