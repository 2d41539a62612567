package rmq

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"

	"github.com/xShinnRyuu/amazon-neptune-tools/config"
	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
	"github.com/xShinnRyuu/amazon-neptune-tools/internal/compression"
	"github.com/xShinnRyuu/amazon-neptune-tools/pkg/logger"
	"github.com/xShinnRyuu/amazon-neptune-tools/pkg/rabbitmq"
)

// AMQPWorker consumes compress-directory requests from RabbitMQ and
// publishes the batch tally back on the response routing key.
type AMQPWorker struct {
	amqpChan *amqp.Channel
	cfg      *config.Config
	l        logger.Interface
}

// NewAMQPWorker rabbitmq consumer constructor
func NewAMQPWorker(cfg *config.Config, l logger.Interface) (*AMQPWorker, error) {
	mqConn, err := rabbitmq.NewRabbitMQConn(cfg)
	if err != nil {
		return nil, err
	}
	amqpChan, err := mqConn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "amqpw.amqpConn.Channel")
	}

	return &AMQPWorker{cfg: cfg, l: l, amqpChan: amqpChan}, nil
}

// SetupExchangeAndQueue create exchange and queue
func (amqpw *AMQPWorker) SetupExchangeAndQueue(exchange, queueName, bindingKey, consumerTag string) error {
	amqpw.l.Info("Declaring exchange: %s", exchange)
	err := amqpw.amqpChan.ExchangeDeclare(
		exchange,
		exchangeKind,
		exchangeDurable,
		exchangeAutoDelete,
		exchangeInternal,
		exchangeNoWait,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Error ch.ExchangeDeclare")
	}

	queue, err := amqpw.amqpChan.QueueDeclare(
		queueName,
		queueDurable,
		queueAutoDelete,
		queueExclusive,
		queueNoWait,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Error ch.QueueDeclare")
	}

	amqpw.l.Info("Declared queue, binding it to exchange: Queue: %v, messageCount: %v, "+
		"consumerCount: %v, exchange: %v, bindingKey: %v",
		queue.Name,
		queue.Messages,
		queue.Consumers,
		exchange,
		bindingKey,
	)

	err = amqpw.amqpChan.QueueBind(
		queue.Name,
		bindingKey,
		exchange,
		queueNoWait,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Error ch.QueueBind")
	}

	amqpw.l.Info("Queue bound to exchange, starting to consume from queue, consumerTag: %v", consumerTag)
	return nil
}

// CloseChan Close messages chan
func (amqpw *AMQPWorker) CloseChan() error {
	if err := amqpw.amqpChan.Close(); err != nil {
		amqpw.l.Error("AMQPWorker CloseChan: %v", err)
		return err
	}
	return nil
}

// Publish message
func (amqpw *AMQPWorker) Publish(exchange, key, contentType, corrId string, body []byte) error {
	amqpw.l.Info("Publishing message Exchange: %s, RoutingKey: %s", exchange, key)

	if err := amqpw.amqpChan.Publish(
		exchange,
		key,
		publishMandatory,
		publishImmediate,
		amqp.Publishing{
			ContentType:   contentType,
			DeliveryMode:  amqp.Persistent,
			MessageId:     uuid.New().String(),
			Timestamp:     time.Now(),
			CorrelationId: corrId,
			Body:          body,
		},
	); err != nil {
		return errors.Wrap(err, "ch.Publish")
	}

	return nil
}

// StartConsumer Start new rabbitmq consumer
func (c *AMQPWorker) StartConsumer(ctx context.Context) error {
	ch := c.amqpChan

	if err := c.SetupExchangeAndQueue(c.cfg.RMQ.Exchange, compressQueue, compressBindingKey, ""); err != nil {
		return errors.Wrap(err, "SetupExchangeAndQueue")
	}

	deliveries, err := ch.Consume(
		compressQueue,
		"",
		consumeAutoAck,
		consumeExclusive,
		consumeNoLocal,
		consumeNoWait,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Consume")
	}

	go c.ConsumeCompression(ctx, deliveries)

	chanErr := <-ch.NotifyClose(make(chan *amqp.Error))
	c.l.Error("ch.NotifyClose: %v", chanErr)
	return chanErr
}

// ConsumeCompression runs one batch per delivery. Per-file failures are
// already folded into the summary; only an unusable request or a structural
// error shows up in the response's error field.
func (c *AMQPWorker) ConsumeCompression(ctx context.Context, messages <-chan amqp.Delivery) {
	for delivery := range messages {
		msgCtx, span := otel.Tracer(traceName).Start(ctx, "consumer")

		var req entity.CompressRequest
		if err := json.Unmarshal(delivery.Body, &req); err != nil {
			c.l.Error(err)
			delivery.Reject(false)
			span.End()
			continue
		}

		rep := compression.NewReporter(os.Stderr)
		summary, err := compression.Run(msgCtx, req.Directory, req.RemoveOriginals, rep)

		resp := entity.CompressResponse{
			Directory: req.Directory,
			Attempted: summary.Attempted,
			Succeeded: summary.Succeeded,
			Failed:    summary.Failed,
		}
		if err != nil {
			c.l.Error(err)
			resp.Err = err.Error()
		}

		body, err := json.Marshal(resp)
		if err != nil {
			c.l.Error(err)
			delivery.Ack(false)
			span.End()
			continue
		}

		if err := c.Publish(c.cfg.RMQ.Exchange, responseKey, "application/json", delivery.CorrelationId, body); err != nil {
			c.l.Error(err)
		}

		delivery.Ack(false)
		span.End()
	}
}
