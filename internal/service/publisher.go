package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	q "github.com/iliyamo/vidly-api/internal/queue"
)

// AMQPPublisher publishes rental events to the rental.events queue.  Every
// publish dials the broker; a circuit breaker stops dialing for a while
// once the broker keeps failing so requests do not pay for the timeout.
type AMQPPublisher struct {
	url string
	cb  *gobreaker.CircuitBreaker
}

// NewAMQPPublisher builds a publisher for url.
func NewAMQPPublisher(url string, log logrus.FieldLogger) *AMQPPublisher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "rabbitmq",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
		},
	})
	return &AMQPPublisher{url: url, cb: cb}
}

// Publish sends event as a persistent JSON message.  Errors are returned so
// the caller can log them; they never affect the stored rental.
func (p *AMQPPublisher) Publish(ctx context.Context, event q.RentalEvent) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.publish(ctx, event)
	})
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, event q.RentalEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(3 * time.Second)})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.RentalQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}
	return ch.PublishWithContext(ctx, "", q.RentalQueueName, false, false, pub)
}
