package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Sandip75/backend-task/internal/model"
)

// LoginEventPublisher enqueues login records for asynchronous persistence.
// The ledger is advisory audit data, so writes do not sit on the login path.
type LoginEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewLoginEventPublisher(conn *amqp.Connection, queueName string) *LoginEventPublisher {
	return &LoginEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *LoginEventPublisher) Publish(ctx context.Context, record model.LoginRecord) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal login record failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish login record failed: %w", err)
	}
	return nil
}
