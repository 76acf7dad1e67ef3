package recipes

import (
	"errors"
	"net/http"

	"recipe-curator/internal/core/recipe"
	"recipe-curator/internal/core/selection"
	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/infrastructure/storage"
	"recipe-curator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnnotateRequest 批次估價標註請求。set 預設 curated：估價要在
// 分類之後跑，meal_type 才能決定份數（湯 6 份、開胃菜 8 份）。
type AnnotateRequest struct {
	Set string `json:"set,omitempty"` // curated（預設）或 raw
}

// AnnotateResponse 批次估價標註結果
type AnnotateResponse struct {
	RunID   string `json:"run_id"`
	Total   int    `json:"total"`
	Priced  int    `json:"priced"`
	Skipped int    `json:"skipped"`
	Unknown int    `json:"unknown"`
	Elapsed string `json:"elapsed"`
}

// CurateResponse 精選結果
type CurateResponse struct {
	Curated int                   `json:"curated"`
	Stats   *recipe.CurationStats `json:"stats"`
}

// PickRequest 選餐請求，欄位省略時用設定檔的預設值
type PickRequest struct {
	NumRecipes    int     `json:"num_recipes,omitempty"`
	MealType      string  `json:"meal_type,omitempty"`
	ProteinSource string  `json:"protein_source,omitempty"`
	MinRating     float64 `json:"min_rating,omitempty"`
	Notify        bool    `json:"notify,omitempty"` // 選完後觸發 webhook
}

// PickResponse 選餐結果：食譜、純文字餐單與表格列
type PickResponse struct {
	Recipes []*common.Recipe `json:"recipes"`
	Plan    string           `json:"plan"`
	Rows    [][]string       `json:"rows"`
}

// Handler 食譜管線處理程序：標註、精選、選餐
type Handler struct {
	store     storage.Store
	annotator *recipe.Annotator
	curator   *recipe.Curator
	notifier  *selection.Notifier
	selCfg    config.SelectionConfig
}

// NewHandler 創建食譜管線處理程序
func NewHandler(store storage.Store, annotator *recipe.Annotator, curator *recipe.Curator, notifier *selection.Notifier, selCfg config.SelectionConfig) *Handler {
	return &Handler{
		store:     store,
		annotator: annotator,
		curator:   curator,
		notifier:  notifier,
		selCfg:    selCfg,
	}
}

// HandleAnnotate 對指定資料集批次估價並回存，預設精選集。
// 已有價格的食譜會跳過，重跑是冪等的。
func (h *Handler) HandleAnnotate(c *gin.Context) {
	ctx := c.Request.Context()

	var req AnnotateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.LogWarn("標註請求格式無效", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	set := storage.SetCurated
	switch req.Set {
	case "", string(storage.SetCurated):
	case string(storage.SetRaw):
		set = storage.SetRaw
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown recipe set", "code": common.ErrCodeInvalidRequest})
		return
	}

	recipes, err := h.store.Load(ctx, set)
	if err != nil {
		h.storeError(c, err)
		return
	}

	res := h.annotator.AnnotatePrices(ctx, recipes)

	if err := h.store.Save(ctx, set, recipes); err != nil {
		common.LogError("標註結果回存失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save annotated recipes"})
		return
	}

	c.JSON(http.StatusOK, AnnotateResponse{
		RunID:   res.RunID,
		Total:   res.Total,
		Priced:  res.Priced,
		Skipped: res.Skipped,
		Unknown: res.Unknown,
		Elapsed: res.Elapsed.String(),
	})
}

// HandleCurate 從原始資料集篩出精選集並保存
func (h *Handler) HandleCurate(c *gin.Context) {
	ctx := c.Request.Context()

	recipes, err := h.store.Load(ctx, storage.SetRaw)
	if err != nil {
		h.storeError(c, err)
		return
	}

	curated, stats := h.curator.Curate(recipes)

	if err := h.store.Save(ctx, storage.SetCurated, curated); err != nil {
		common.LogError("精選結果保存失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save curated recipes"})
		return
	}

	c.JSON(http.StatusOK, CurateResponse{
		Curated: len(curated),
		Stats:   stats,
	})
}

// HandlePick 從精選集隨機選餐並產生餐單
func (h *Handler) HandlePick(c *gin.Context) {
	ctx := c.Request.Context()

	// 空請求體走設定檔預設值
	var req PickRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.LogWarn("選餐請求格式無效", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	cfg := h.selCfg
	if req.NumRecipes > 0 {
		cfg.NumRecipes = req.NumRecipes
	}
	if req.MealType != "" {
		cfg.MealType = req.MealType
	}
	if req.ProteinSource != "" {
		cfg.ProteinSource = req.ProteinSource
	}
	if req.MinRating > 0 {
		cfg.MinRating = req.MinRating
	}

	recipes, err := h.store.Load(ctx, storage.SetCurated)
	if err != nil {
		h.storeError(c, err)
		return
	}

	selector := selection.NewSelector(cfg)
	candidates := selector.Filter(recipes)
	if len(candidates) == 0 {
		common.LogWarn("沒有符合條件的食譜",
			zap.String("meal_type", cfg.MealType),
			zap.String("protein_source", cfg.ProteinSource),
		)
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No recipes match the requested filters",
			"code":  common.ErrEmptySelection.Code,
		})
		return
	}

	picked := selector.Pick(candidates, cfg.NumRecipes)
	plan := selection.NewMealPlan(picked)

	if req.Notify {
		if err := h.notifier.Notify(ctx); err != nil {
			// 通知失敗不影響選餐結果，記下來就好
			common.LogWarn("選餐通知失敗", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, PickResponse{
		Recipes: picked,
		Plan:    plan.Render(),
		Rows:    plan.Rows(),
	})
}

// storeError 把持久層錯誤轉成對應的 HTTP 回應
func (h *Handler) storeError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		c.JSON(ce.Status, gin.H{"error": ce.Message, "code": ce.Code})
		return
	}
	common.LogError("持久層錯誤", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage failure"})
}
