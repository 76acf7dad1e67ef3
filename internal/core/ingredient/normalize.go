package ingredient

import (
	"regexp"
	"strings"
)

// measurementPattern 移除「數字＋（可省略的）單位詞」子字串。
// 單位詞彙與 quantity.go 相同並涵蓋複數型；單位詞可省略，
// 所以孤零零的數字（"2 eggs" 的 2）也會被拿掉。
var measurementPattern = regexp.MustCompile(
	`\b\d+(?:\.\d+)?(?:\s+\d+/\d+|/\d+)?\s*(?:` +
		`cups?|tbsp|tablespoons?|tsp|teaspoons?|oz|ounces?|lbs?|pounds?|` +
		`grams?|kg|ml|liters?|pieces?|cloves?|cans?|bunch(?:es)?|heads?|packages?` +
		`)?\b`)

// descriptorPattern 移除常見的修飾詞，留下食材本體
var descriptorPattern = regexp.MustCompile(
	`\b(?:fresh|dried|ground|chopped|diced|sliced|minced|whole|boneless|` +
		`skinless|large|small|medium|extra|virgin|organic)\b`)

// Normalize 將原始食材文字正規化成目錄比對用的名稱：
// 轉小寫、移除數量與單位、移除修飾詞、壓縮空白。
// 此轉換是冪等的：對已正規化的名稱再跑一次結果不變。
func Normalize(line string) string {
	text := strings.ToLower(line)
	text = measurementPattern.ReplaceAllString(text, "")
	text = descriptorPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
