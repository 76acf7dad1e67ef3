package selection

import (
	"context"
	"fmt"

	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notifier 餐單完成後呼叫外部 webhook（觸發寄信等後續動作）。
// webhook 未設定時所有呼叫都是 no-op。
type Notifier struct {
	client *resty.Client
	url    string
}

// NewNotifier 創建 webhook 通知器
func NewNotifier(cfg config.SelectionConfig) *Notifier {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "recipe-curator/1.0")

	return &Notifier{
		client: client,
		url:    cfg.WebhookURL,
	}
}

// Notify 以 GET 觸發 webhook，回傳非 2xx 視為失敗
func (n *Notifier) Notify(ctx context.Context) error {
	if n.url == "" {
		common.LogDebug("webhook 未設定，略過通知")
		return nil
	}

	resp, err := n.client.R().
		SetContext(ctx).
		Get(n.url)
	if err != nil {
		common.LogError("webhook 呼叫失敗", zap.Error(err))
		return fmt.Errorf("failed to call webhook: %w", err)
	}

	if resp.IsError() {
		common.LogError("webhook 回應錯誤",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	common.LogInfo("webhook 通知完成", zap.Int("status", resp.StatusCode()))
	return nil
}
