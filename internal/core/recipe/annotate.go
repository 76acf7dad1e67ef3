package recipe

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"recipe-curator/internal/core/ingredient"
	"recipe-curator/internal/infrastructure/cache"
	"recipe-curator/internal/pkg/common"

	"go.uber.org/zap"
)

// Annotator 批次估價標註器。每筆食譜的估價彼此獨立，
// 由固定數量的 worker 平行處理；目錄唯讀共用，不需要鎖。
type Annotator struct {
	estimator *ingredient.Estimator
	cache     cache.PriceCache // 可為 nil（快取停用）
	workers   int
}

// AnnotateResult 批次標註結果
type AnnotateResult struct {
	RunID   string        `json:"run_id"`
	Total   int           `json:"total"`
	Priced  int           `json:"priced"`
	Skipped int           `json:"skipped"`  // 已有估價，依規則跳過不重算
	Unknown int           `json:"unknown"`  // 沒有食材，價格未知
	Elapsed time.Duration `json:"elapsed"`
}

// NewAnnotator 創建標註器
func NewAnnotator(estimator *ingredient.Estimator, priceCache cache.PriceCache, workers int) *Annotator {
	if workers <= 0 {
		workers = 1
	}
	return &Annotator{
		estimator: estimator,
		cache:     priceCache,
		workers:   workers,
	}
}

// AnnotatePrices 為集合內所有食譜補上 estimated_price。
// 已有非 null 估價的食譜不重算，計入 skipped——這是明確的
// 「已定價就跳過」政策，不只是 memoization。
func (a *Annotator) AnnotatePrices(ctx context.Context, recipes []*common.Recipe) *AnnotateResult {
	start := time.Now()
	runID := common.GenerateUUID()

	common.LogInfo("開始批次估價",
		zap.String("run_id", runID),
		zap.Int("總數", len(recipes)),
		zap.Int("workers", a.workers),
	)

	var priced, skipped, unknown int64

	jobs := make(chan *common.Recipe)
	var wg sync.WaitGroup

	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				switch a.priceOne(ctx, r) {
				case outcomeSkipped:
					atomic.AddInt64(&skipped, 1)
				case outcomeUnknown:
					atomic.AddInt64(&unknown, 1)
				default:
					atomic.AddInt64(&priced, 1)
				}
			}
		}()
	}

	for i, r := range recipes {
		if i > 0 && i%100 == 0 {
			common.LogAnnotation(runID, int(atomic.LoadInt64(&priced)), int(atomic.LoadInt64(&skipped)), len(recipes))
		}
		select {
		case jobs <- r:
		case <-ctx.Done():
			// 取消時停止派工，已派出的照常完成
			close(jobs)
			wg.Wait()
			return a.result(runID, len(recipes), priced, skipped, unknown, start)
		}
	}
	close(jobs)
	wg.Wait()

	res := a.result(runID, len(recipes), priced, skipped, unknown, start)
	common.LogInfo("批次估價完成",
		zap.String("run_id", runID),
		zap.Int("已定價", res.Priced),
		zap.Int("已跳過", res.Skipped),
		zap.Int("價格未知", res.Unknown),
		zap.Duration("耗時", res.Elapsed),
	)
	return res
}

type priceOutcome int

const (
	outcomePriced priceOutcome = iota
	outcomeSkipped
	outcomeUnknown
)

// priceOne 為單筆食譜估價並回寫 estimated_price
func (a *Annotator) priceOne(ctx context.Context, r *common.Recipe) priceOutcome {
	if r.HasPrice() {
		return outcomeSkipped
	}

	if a.cache != nil {
		key := cache.Fingerprint(r)
		if price, err := a.cache.Get(ctx, key); err == nil {
			r.EstimatedPrice = common.Float64Ptr(price)
			return outcomePriced
		}
	}

	price := a.estimator.RecipePrice(r)
	r.EstimatedPrice = price
	if price == nil {
		return outcomeUnknown
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, cache.Fingerprint(r), *price); err != nil {
			common.LogDebug("估價快取寫入失敗", zap.Error(err))
		}
	}
	return outcomePriced
}

func (a *Annotator) result(runID string, total int, priced, skipped, unknown int64, start time.Time) *AnnotateResult {
	return &AnnotateResult{
		RunID:   runID,
		Total:   total,
		Priced:  int(priced),
		Skipped: int(skipped),
		Unknown: int(unknown),
		Elapsed: time.Since(start),
	}
}
