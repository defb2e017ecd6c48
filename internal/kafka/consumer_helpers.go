package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/order_rules/pkg/ctxmeta"
	"github.com/Gunvolt24/order_rules/pkg/metrics"
	"github.com/Gunvolt24/order_rules/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// isPoison — сообщение, которое не станет валидным при повторе.
func isPoison(err error) bool {
	return errors.Is(err, validate.ErrInvalidJSON) || errors.Is(err, validate.ErrInvalidOrder)
}

// messageID — идентификатор сообщения для логов вместо request_id.
func messageID(msg *kafka.Message) string {
	return fmt.Sprintf("kafka:%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
}

// handleMessage обрабатывает одно сообщение и определяет нужно ли коммитить оффсет.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ctx = ctxmeta.WithRequestID(ctx, messageID(msg))

	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	order, err := c.service.SaveFromMessage(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.OrdersIngested.WithLabelValues(topic).Inc()
		if order != nil {
			c.log.Infof(ctx, "order %d ingested offset=%d", order.ID, msg.Offset)
		}
		return true
	case isPoison(err):
		// невалидные данные: коммитим, чтобы не обрабатывать повторно
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid message offset=%d: %v (skipped)", msg.Offset, err)
		return true
	default:
		// БД/сеть/таймаут: не коммитим, сообщение придёт снова
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "process failed offset=%d: %v (will retry without commit)", msg.Offset, err)
		return false
	}
}

// commitSafely — ошибка коммита только логируется: сообщение придёт повторно.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет d или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff — удвоение с потолком retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
