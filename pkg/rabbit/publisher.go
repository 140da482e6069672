package rabbit

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publish sends a message to the event exchange using the topic as the
// routing key. Satisfies the bus.Publisher contract.
func (rb *Rabbit) Publish(ctx context.Context, topic string, body []byte) error {
	select {
	case <-ctx.Done():
		rb.logger.Error("context error for publishing msg into rabbit", ctx.Err(), nil)
		return ctx.Err()
	default:
		rb.mu.RLock()
		err := rb.Channel.PublishWithContext(ctx,
			rb.cfg.Channel.ExchangeName,
			topic,
			false, // Mandatory
			false, // Immediate
			amqp.Publishing{
				ContentType: rb.cfg.Channel.ContentType,
				Body:        body,
			},
		)
		rb.mu.RUnlock()

		if err == nil {
			rb.logger.Debug("message published to rabbit", nil, map[string]interface{}{
				"exchange":    rb.cfg.Channel.ExchangeName,
				"routing_key": topic,
			})
			return nil
		}
		rb.logger.Error("error in publishing msg into rabbit", err, map[string]interface{}{
			"routing_key": topic,
		})
		return err
	}
}
