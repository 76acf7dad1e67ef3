package selection

import (
	"fmt"
	"strings"
	"time"

	"recipe-curator/internal/pkg/common"
)

// MealPlan 一次選餐的結果：挑中的食譜加上產生時間
type MealPlan struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Recipes     []*common.Recipe `json:"recipes"`
}

// NewMealPlan 創建餐單
func NewMealPlan(recipes []*common.Recipe) *MealPlan {
	return &MealPlan{
		GeneratedAt: time.Now(),
		Recipes:     recipes,
	}
}

// Render 輸出純文字餐單：每份食譜一段，含採買清單與步驟
func (p *MealPlan) Render() string {
	var b strings.Builder

	b.WriteString("MEAL PLAN\n")
	b.WriteString(p.GeneratedAt.Format("Monday, January 2, 2006"))
	b.WriteString("\n")

	for i, r := range p.Recipes {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", 50))
		b.WriteString("\n")
		fmt.Fprintf(&b, "RECIPE %d: %s\n", i+1, strings.ToUpper(r.Title))
		b.WriteString(strings.Repeat("=", 50))
		b.WriteString("\n")

		if line := nutritionLine(r); line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}

		b.WriteString("\nSHOPPING LIST\n")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&b, "  [ ] %s\n", ing)
		}

		b.WriteString("\nDIRECTIONS\n")
		for j, step := range r.Directions {
			fmt.Fprintf(&b, "  %d. %s\n", j+1, step)
		}
	}

	return b.String()
}

// Rows 輸出表格列（給試算表匯出用），第一列是表頭
func (p *MealPlan) Rows() [][]string {
	rows := [][]string{
		{"Title", "Rating", "Protein", "Calories", "Est. Price", "Categories", "Ingredients", "Directions"},
	}
	for _, r := range p.Recipes {
		rows = append(rows, []string{
			r.Title,
			formatOptional(r.Rating),
			formatOptional(r.Protein),
			formatOptional(r.Calories),
			formatOptional(r.EstimatedPrice),
			common.StringSliceToString(r.Categories),
			strings.Join(r.Ingredients, "\n"),
			strings.Join(r.Directions, "\n"),
		})
	}
	return rows
}

// nutritionLine 組出一行營養摘要，缺的欄位直接省略
func nutritionLine(r *common.Recipe) string {
	var parts []string
	if r.Rating != nil {
		parts = append(parts, fmt.Sprintf("Rating: %.1f", *r.Rating))
	}
	if r.Protein != nil {
		parts = append(parts, fmt.Sprintf("Protein: %.0fg", *r.Protein))
	}
	if r.Calories != nil {
		parts = append(parts, fmt.Sprintf("Calories: %.0f", *r.Calories))
	}
	if r.EstimatedPrice != nil {
		parts = append(parts, fmt.Sprintf("Est. $%.2f/serving", *r.EstimatedPrice))
	}
	return strings.Join(parts, " | ")
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
