package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// RabbitPublisher публикует события в durable очередь RabbitMQ
// Соединение одно на процесс; amqp.Channel не потокобезопасен для публикации, доступ к нему под мьютексом
type RabbitPublisher struct {
	url   string
	queue string
	log   Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher подключается к брокеру и объявляет очередь
func NewRabbitPublisher(url, queue string, log Logger) (*RabbitPublisher, error) {
	p := &RabbitPublisher{url: url, queue: queue, log: log}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReservationCreated публикует ReservationCreatedEvent
func (p *RabbitPublisher) ReservationCreated(ctx context.Context, res *domain.Reservation, tableIDs []int64, depositAmount int64) error {
	event := NewReservationCreatedEvent(res, tableIDs, depositAmount, time.Now())

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Type:         "reservation.created",
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		p.log.Warn("Notifier: channel closed, reconnecting to broker")
		if err := p.connectLocked(); err != nil {
			return err
		}
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("%w: reservation id=%d: %v", ErrPublish, res.ID, err)
	}

	p.log.Info("Notifier: published reservation.created for reservation id=%d (event=%s)", res.ID, event.EventID)
	return nil
}

// Close закрывает канал и соединение
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *RabbitPublisher) connectLocked() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("%w: dial: %v", ErrConnect, err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		return fmt.Errorf("%w: declare queue %s: %v", ErrConnect, p.queue, err)
	}

	p.ch = ch
	return nil
}
