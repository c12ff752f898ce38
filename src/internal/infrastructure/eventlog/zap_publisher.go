package eventlog

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"go.uber.org/zap"
)

// ===========================
// Zap EventPublisher 實作
// ===========================

// ZapEventPublisher 以結構化日誌發布領域事件
//
// 事件在原子提交成功後發布，發布失敗不回滾業務狀態：
// 日誌後端是目前唯一的下游消費者，之後要接消息佇列時
// 替換此實作即可，Application Layer 不需改動。
type ZapEventPublisher struct {
	logger *zap.Logger
}

// NewZapEventPublisher 創建 ZapEventPublisher 實例
func NewZapEventPublisher(logger *zap.Logger) shared.EventPublisher {
	return &ZapEventPublisher{logger: logger}
}

// Publish 發布單一事件
func (p *ZapEventPublisher) Publish(event shared.DomainEvent) error {
	p.logger.Info("domain event published",
		zap.String("event_id", event.EventID()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// PublishBatch 批量發布事件
func (p *ZapEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}
