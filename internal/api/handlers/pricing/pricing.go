package pricing

import (
	"net/http"

	"recipe-curator/internal/core/ingredient"
	"recipe-curator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EstimateLineRequest 單行食材估價請求
type EstimateLineRequest struct {
	Ingredient string `json:"ingredient" binding:"required"` // 原始食材文字，例如 "2 1/2 cups chopped onion"
}

// PriceRecipeRequest 整份食譜估價請求
type PriceRecipeRequest struct {
	Recipe common.Recipe `json:"recipe" binding:"required"`
}

// PriceRecipeResponse 整份食譜的估價結果與明細
type PriceRecipeResponse struct {
	Title          string                    `json:"title"`
	EstimatedPrice *float64                  `json:"estimated_price"`
	Servings       int                       `json:"servings"`
	Lines          []ingredient.LineEstimate `json:"lines"`
}

// Handler 估價處理程序
type Handler struct {
	estimator *ingredient.Estimator
}

// NewHandler 創建估價處理程序
func NewHandler(estimator *ingredient.Estimator) *Handler {
	return &Handler{estimator: estimator}
}

// HandleEstimateLine 解析並估價單行食材文字
func (h *Handler) HandleEstimateLine(c *gin.Context) {
	var req EstimateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("估價請求格式無效",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	est := h.estimator.Estimate(req.Ingredient)

	common.LogDebug("單行估價完成",
		zap.String("ingredient", req.Ingredient),
		zap.Bool("matched", est.Matched),
		zap.Float64("cost", est.Cost),
	)

	c.JSON(http.StatusOK, est)
}

// HandlePriceRecipe 估算整份食譜的每份價格。
// 不落檔，純計算；已有價格的食譜也會重新估一次。
func (h *Handler) HandlePriceRecipe(c *gin.Context) {
	var req PriceRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("食譜估價請求格式無效",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	r := req.Recipe
	lines := make([]ingredient.LineEstimate, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		lines = append(lines, h.estimator.Estimate(line))
	}

	resp := PriceRecipeResponse{
		Title:          r.Title,
		EstimatedPrice: h.estimator.RecipePrice(&r),
		Servings:       ingredient.ServingsFor(r.MealType),
		Lines:          lines,
	}

	common.LogInfo("食譜估價完成",
		zap.String("title", r.Title),
		zap.Int("ingredients", len(r.Ingredients)),
		zap.String("request_id", c.GetHeader("X-Request-ID")),
	)

	c.JSON(http.StatusOK, resp)
}
