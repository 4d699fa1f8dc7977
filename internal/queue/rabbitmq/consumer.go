package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/model"
	"course_api/internal/queue"
	"course_api/internal/service/course"
)

const createTimeout = 5 * time.Second

type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Consumer turns import messages into courses.
type Consumer struct {
	url         string
	svc         *course.Service
	logger      *zap.Logger
	exchange    string
	queue       string
	importKey   string
	consumerTag string
}

func NewConsumer(cfg *config.Config, svc *course.Service, logger *zap.Logger) queue.Consumer {
	if cfg.RabbitMQURL == "" {
		return &noopConsumer{}
	}
	return &Consumer{
		url:         cfg.RabbitMQURL,
		svc:         svc,
		logger:      logger,
		exchange:    cfg.RabbitExchange,
		queue:       cfg.RabbitQueue,
		importKey:   cfg.RabbitImportKey,
		consumerTag: cfg.RabbitConsumerTag,
	}
}

func (r *Consumer) Start(ctx context.Context) error {
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.consume_loop")
	span.SetAttributes(r.attributes(r.importKey)...)
	defer span.End()

	deliveries, closeFn, err := r.subscribe()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "subscribe failed")
		return err
	}
	defer closeFn()

	r.logger.Info("RabbitMQ import consumer started",
		zap.String("exchange", r.exchange),
		zap.String("queue", r.queue),
		zap.String("routing_key", r.importKey),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				span.SetStatus(codes.Error, "deliveries closed")
				return errors.New("rabbitmq deliveries closed")
			}
			if err := r.handleMessage(ctx, msg); err != nil {
				span.RecordError(err)
				return err
			}
		}
	}
}

func (r *Consumer) subscribe() (<-chan amqp.Delivery, func(), error) {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	closeFn := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	if err := ch.Qos(10, 0, false); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("rabbitmq qos: %w", err)
	}
	if err := declareExchange(ch, r.exchange); err != nil {
		closeFn()
		return nil, nil, err
	}
	q, err := ch.QueueDeclare(r.queue, true, false, false, false, nil)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	if err := ch.QueueBind(q.Name, r.importKey, r.exchange, false, nil); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}
	deliveries, err := ch.Consume(q.Name, r.consumerTag, false, false, false, false, nil)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("rabbitmq consume: %w", err)
	}
	return deliveries, closeFn, nil
}

// handleMessage acks messages that can never succeed and requeues those that
// failed on the store. A non-nil return stops the consume loop.
func (r *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, amqpHeaderCarrier(msg.Headers))
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.handle_message", trace.WithSpanKind(trace.SpanKindConsumer))
	span.SetAttributes(r.attributes(msg.RoutingKey)...)
	defer span.End()

	var p course.ImportPayload
	if err := json.Unmarshal(msg.Body, &p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid json")
		r.logger.Error("rabbitmq invalid import json", zap.Error(err))
		return msg.Ack(false)
	}

	createCtx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()
	created, err := r.svc.Create(createCtx, model.Course{Name: p.Name, Description: p.Description})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create course failed")
		r.logger.Error("rabbitmq import course failed", zap.String("name", p.Name), zap.Error(err))
		if nackErr := msg.Nack(false, true); nackErr != nil {
			r.logger.Error("rabbitmq nack failed", zap.Error(nackErr))
		}
		return nil
	}

	span.SetAttributes(attribute.Int64("course.id", created.ID))
	r.logger.Info("course imported", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return msg.Ack(false)
}

func (r *Consumer) attributes(routingKey string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", r.exchange),
		attribute.String("messaging.destination_kind", "exchange"),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
	}
}
