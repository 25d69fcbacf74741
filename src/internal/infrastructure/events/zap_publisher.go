// Package events 發布領域事件。
package events

import (
	"fmt"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// ZapPublisher 把領域事件寫成結構化日誌（餘額變動的稽核軌跡）
//
// 事件在事務提交後才發布，因此發布失敗不會影響已提交的資料。
type ZapPublisher struct {
	logger *zap.Logger
}

// NewZapPublisher 創建事件發布器
func NewZapPublisher(logger *zap.Logger) *ZapPublisher {
	return &ZapPublisher{logger: logger.Named("events")}
}

// Publish 發布單一事件
func (p *ZapPublisher) Publish(event shared.DomainEvent) error {
	if event == nil {
		return fmt.Errorf("nil domain event")
	}

	fields := []zap.Field{
		zap.String("event_id", event.EventID()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
	}
	fields = append(fields, payloadFields(event)...)

	// 管理員改寫餘額繞過了充值 / 訂單的因果鏈，以 WARN 區分
	if _, ok := event.(*customer.BalanceOverwrittenEvent); ok {
		p.logger.Warn("domain event", fields...)
		return nil
	}

	p.logger.Info("domain event", fields...)
	return nil
}

// PublishBatch 依序發布多個事件
func (p *ZapPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

func payloadFields(event shared.DomainEvent) []zap.Field {
	switch e := event.(type) {
	case *customer.BalanceCreditedEvent:
		return []zap.Field{
			zap.String("amount", e.Amount().String()),
			zap.String("source", string(e.Source())),
			zap.String("source_id", e.SourceID()),
			zap.String("balance_after", e.BalanceAfter().String()),
		}
	case *customer.BalanceDebitedEvent:
		return []zap.Field{
			zap.String("amount", e.Amount().String()),
			zap.String("source", string(e.Source())),
			zap.String("source_id", e.SourceID()),
			zap.String("balance_after", e.BalanceAfter().String()),
		}
	case *customer.BalanceOverwrittenEvent:
		return []zap.Field{
			zap.String("old_balance", e.OldBalance().String()),
			zap.String("new_balance", e.NewBalance().String()),
			zap.String("reason", e.Reason()),
		}
	case *customer.CustomerRegisteredEvent:
		return []zap.Field{zap.String("name", e.Name())}
	case *order.OrderPlacedEvent:
		return []zap.Field{
			zap.String("customer_id", e.CustomerID().String()),
			zap.String("order_no", e.OrderNo()),
			zap.String("pay_type", string(e.PayType())),
			zap.String("total_price", e.TotalPrice().String()),
		}
	case *order.OrderStatusChangedEvent:
		return []zap.Field{
			zap.String("from", e.From().String()),
			zap.String("to", e.To().String()),
		}
	default:
		return nil
	}
}
