package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

const publishTimeout = 2 * time.Second

// Publisher публикует события бронирований в durable-очередь RabbitMQ.
// Соединение открывается при первой публикации и переоткрывается после ошибки.
type Publisher struct {
	queue   string
	connect connector
	logger  Logger

	mu      sync.Mutex
	ch      amqpChannel
	closeFn func() error
}

// NewPublisher создает публикатор для брокера url и очереди queue
func NewPublisher(url, queue string, logger Logger) *Publisher {
	return newPublisher(queue, dial(url), logger)
}

func newPublisher(queue string, connect connector, logger Logger) *Publisher {
	return &Publisher{
		queue:   queue,
		connect: connect,
		logger:  logger,
	}
}

func dial(url string) connector {
	return func() (amqpChannel, func() error, error) {
		conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(publishTimeout)})
		if err != nil {
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		closeFn := func() error {
			_ = ch.Close()
			return conn.Close()
		}
		return ch, closeFn, nil
	}
}

// Publish отправляет событие. Ошибка брокера не должна ломать уже зафиксированную запись,
// поэтому она только логируется.
func (p *Publisher) Publish(ctx context.Context, event domain.ReservationEvent) {
	if err := p.publish(ctx, event); err != nil {
		p.logger.Error("Publish: event=%s reservation=%d dropped: %v", event.Type, event.ReservationID, err)
		return
	}
	p.logger.Info("Publish: event=%s reservation=%d queue=%s", event.Type, event.ReservationID, p.queue)
}

func (p *Publisher) publish(ctx context.Context, event domain.ReservationEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(pubCtx,
		"",      // default exchange
		p.queue, // routing key = имя очереди
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Type:         string(event.Type),
			Timestamp:    event.OccurredAt.UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// channel возвращает открытый канал, подключаясь и объявляя очередь при необходимости.
// Вызывается под p.mu.
func (p *Publisher) channel() (amqpChannel, error) {
	if p.ch != nil {
		return p.ch, nil
	}

	ch, closeFn, err := p.connect()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrConnect, p.queue, err)
	}

	p.ch = ch
	p.closeFn = closeFn
	return ch, nil
}

// reset закрывает текущее соединение, следующая публикация откроет новое. Вызывается под p.mu.
func (p *Publisher) reset() {
	if p.closeFn != nil {
		_ = p.closeFn()
	}
	p.ch = nil
	p.closeFn = nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closeFn == nil {
		return nil
	}
	err := p.closeFn()
	p.ch = nil
	p.closeFn = nil
	return err
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, domain.ReservationEvent) {}
