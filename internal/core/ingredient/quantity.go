package ingredient

import (
	"regexp"
	"strconv"
	"strings"
)

// UnitClass 數量換算後的度量類別
type UnitClass string

const (
	UnitPound UnitClass = "pound" // 重量一律換算成磅
	UnitCup   UnitClass = "cup"   // 容量一律換算成杯
	UnitCount UnitClass = "count" // 其餘視為個數
)

// Quantity 從食材文字解析出的數量
type Quantity struct {
	Magnitude float64   // 換算後的數值，解析失敗時為 1.0
	Unit      UnitClass // 度量類別
}

// defaultQuantity 找不到數字 token 時的退路
var defaultQuantity = Quantity{Magnitude: 1.0, Unit: UnitCount}

// unitConversion 單位詞對應的類別與換算係數
type unitConversion struct {
	class  UnitClass
	factor float64
}

// unitTable 單位詞彙表。重量換成磅、容量換成杯，查不到的單位詞
//（gram、kg、ml、clove、can...）歸入個數且不做換算。
var unitTable = map[string]unitConversion{
	"lb":          {UnitPound, 1},
	"pound":       {UnitPound, 1},
	"pounds":      {UnitPound, 1},
	"oz":          {UnitPound, 1.0 / 16},
	"ounce":       {UnitPound, 1.0 / 16},
	"ounces":      {UnitPound, 1.0 / 16},
	"cup":         {UnitCup, 1},
	"cups":        {UnitCup, 1},
	"tbsp":        {UnitCup, 1.0 / 16}, // 16 tbsp = 1 cup
	"tablespoon":  {UnitCup, 1.0 / 16},
	"tablespoons": {UnitCup, 1.0 / 16},
	"tsp":         {UnitCup, 1.0 / 48}, // 48 tsp = 1 cup
	"teaspoon":    {UnitCup, 1.0 / 48},
	"teaspoons":   {UnitCup, 1.0 / 48},
}

// quantityPattern 抓出第一個數字 token（整數、小數、單純分數或帶分數），
// 後面緊跟的單位詞可有可無。只取字串中的第一個匹配。
var quantityPattern = regexp.MustCompile(
	`(\d+(?:\.\d+)?)(?:\s+(\d+)/(\d+)|/(\d+))?\s*(` + unitWordAlternation + `)?\b`)

const unitWordAlternation = `cups|cup|tbsp|tsp|oz|lb|pounds|pound|ounces|ounce|grams|gram|kg|ml|liter|pieces|piece|cloves|clove|cans|can|bunches|bunch|heads|head|packages|package`

// ExtractQuantity 從原始食材文字解析 (數值, 度量類別)。
// 解析降級永遠不是錯誤：找不到數字 token 時回傳 (1.0, count)，
// 分數壞掉（分母為零）時退回整數部分，整數部分也沒有就退回 1.0。
func ExtractQuantity(line string) Quantity {
	m := quantityPattern.FindStringSubmatch(strings.ToLower(line))
	if m == nil {
		return defaultQuantity
	}

	magnitude := parseMagnitude(m[1], m[2], m[3], m[4])

	unitWord := m[5]
	conv, ok := unitTable[unitWord]
	if !ok {
		// 沒有單位詞或不在換算表內，一律當個數
		return Quantity{Magnitude: magnitude, Unit: UnitCount}
	}
	return Quantity{Magnitude: magnitude * conv.factor, Unit: conv.class}
}

// parseMagnitude 組合整數/小數部分與分數部分。
// whole 一定是 regex 抓到的數字字串；mixedNum/mixedDen 是帶分數
//（"2 1/2"）的分子分母，bareDen 是單純分數（"3/4"）的分母。
func parseMagnitude(whole, mixedNum, mixedDen, bareDen string) float64 {
	w, err := strconv.ParseFloat(whole, 64)
	if err != nil {
		return 1.0
	}

	switch {
	case mixedDen != "":
		// 帶分數："2 1/2" → 2 + 1/2
		num, _ := strconv.ParseFloat(mixedNum, 64)
		den, _ := strconv.ParseFloat(mixedDen, 64)
		if den == 0 {
			return fallbackWhole(w)
		}
		return w + num/den
	case bareDen != "":
		// 單純分數："3/4" → 3/4
		den, _ := strconv.ParseFloat(bareDen, 64)
		if den == 0 {
			return fallbackWhole(0)
		}
		return w / den
	default:
		return w
	}
}

// fallbackWhole 分數解析失敗時的退路：整數部分為正就用它，否則 1.0
func fallbackWhole(w float64) float64 {
	if w > 0 {
		return w
	}
	return 1.0
}
