package ingredient

import "strings"

// Entry 目錄項目：標準食材名稱與參考單價。
// 蛋白質與蔬菜以每磅計價，蛋、柑橘類以每個計價，
// 香料名目上是每盎司但套用方式與重量相同。
type Entry struct {
	Key   string
	Price float64
}

// Catalog 食材價格目錄。項目順序是比對平手時的決勝契約，
// 所以用有序切片而不是 map；程序啟動後唯讀，可安全共用。
type Catalog struct {
	entries []Entry
}

// NewCatalog 以給定項目建立目錄（順序即決勝順序）
func NewCatalog(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Entries 回傳目錄項目（唯讀用途）
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Match 在目錄中找最符合的項目：每個是子字串的 key 依
// len(key)/len(name) 計分，嚴格較高分者勝，平手保留先出現者。
// 空名稱一律視為無匹配。
func (c *Catalog) Match(name string) (Entry, bool) {
	var best Entry
	var bestScore float64
	found := false

	for _, e := range c.entries {
		if !strings.Contains(name, e.Key) {
			continue
		}
		score := 0.0
		if len(name) > 0 {
			score = float64(len(e.Key)) / float64(len(name))
		}
		if score > bestScore {
			bestScore = score
			best = e
			found = true
		}
	}
	return best, found
}

// DefaultCatalog 內建的美國零售參考價目錄。
// 手工維護、啟動時建立一次，執行期間不增刪。
func DefaultCatalog() *Catalog {
	return NewCatalog([]Entry{
		// 蛋白質（每磅）
		{"chicken", 4.50},
		{"chicken breast", 5.00},
		{"chicken thigh", 3.50},
		{"beef", 8.00},
		{"ground beef", 6.00},
		{"steak", 12.00},
		{"sirloin", 10.00},
		{"ribeye", 15.00},
		{"pork", 5.00},
		{"pork shoulder", 4.00},
		{"pork chop", 6.00},
		{"bacon", 7.00},
		{"ham", 5.00},
		{"sausage", 5.50},
		{"salmon", 12.00},
		{"tuna", 8.00},
		{"fish", 8.00},
		{"cod", 7.00},
		{"halibut", 15.00},
		{"tilapia", 5.00},
		{"shrimp", 10.00},
		{"crab", 15.00},
		{"lobster", 20.00},
		{"scallop", 18.00},
		{"turkey", 4.00},
		{"lamb", 10.00},
		{"egg", 0.25},
		{"eggs", 0.25},

		// 蔬菜（每磅或每個）
		{"onion", 1.00},
		{"garlic", 0.50},
		{"carrot", 1.50},
		{"celery", 1.50},
		{"potato", 1.00},
		{"tomato", 2.00},
		{"bell pepper", 2.00},
		{"mushroom", 4.00},
		{"spinach", 3.00},
		{"lettuce", 2.00},
		{"broccoli", 2.50},
		{"cauliflower", 2.50},
		{"zucchini", 2.00},
		{"eggplant", 2.00},
		{"corn", 1.50},
		{"peas", 2.00},
		{"green bean", 3.00},
		{"asparagus", 4.00},
		{"avocado", 1.50},

		// 穀物與澱粉
		{"rice", 2.00},
		{"pasta", 2.00},
		{"noodle", 2.00},
		{"bread", 3.00},
		{"flour", 1.50},
		{"quinoa", 5.00},
		{"barley", 2.00},
		{"couscous", 3.00},

		// 乳製品
		{"milk", 3.50},
		{"cheese", 5.00},
		{"butter", 4.00},
		{"cream", 4.00},
		{"yogurt", 4.00},
		{"sour cream", 3.00},

		// 油脂
		{"olive oil", 8.00},
		{"vegetable oil", 3.00},
		{"canola oil", 3.00},
		{"coconut oil", 6.00},

		// 香料與香草（每盎司，但用量很小）
		{"salt", 0.50},
		{"pepper", 2.00},
		{"paprika", 3.00},
		{"cumin", 4.00},
		{"coriander", 4.00},
		{"turmeric", 4.00},
		{"cinnamon", 5.00},
		{"nutmeg", 6.00},
		{"oregano", 4.00},
		{"thyme", 4.00},
		{"rosemary", 4.00},
		{"basil", 4.00},
		{"parsley", 3.00},
		{"cilantro", 3.00},
		{"ginger", 4.00},
		{"bay leaf", 3.00},

		// 其他常見食材
		{"chicken broth", 2.50},
		{"beef broth", 2.50},
		{"vegetable broth", 2.50},
		{"stock", 2.50},
		{"wine", 8.00},
		{"vinegar", 3.00},
		{"soy sauce", 3.00},
		{"worcestershire", 4.00},
		{"mustard", 3.00},
		{"mayonnaise", 3.00},
		{"ketchup", 2.00},
		{"sugar", 2.00},
		{"honey", 6.00},
		{"lemon", 0.50},
		{"lime", 0.50},
		{"orange", 0.75},
	})
}
