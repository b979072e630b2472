package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Consumer listens to the rental.events queue and appends every event to a
// log file in a single-line, human-friendly format.
type Consumer struct {
	URL     string
	LogPath string
	Log     logrus.FieldLogger
}

// Run dials the broker, declares the durable queue and consumes messages
// until ctx is cancelled.  Broker failures trigger a reconnect with
// exponential backoff capped at thirty seconds.  Bad messages are logged
// and rejected without requeue so they cannot loop.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.WithError(err).Warnf("rental-consumer: dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.WithError(err).Warn("rental-consumer: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.WithError(err).Warn("rental-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(RentalQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(RentalQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(d.Body); err != nil {
				c.Log.WithError(err).Error("rental-consumer: handle message failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var ev RentalEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatEvent(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatEvent renders one log line for ev, newline included.
func FormatEvent(ev RentalEvent) string {
	switch ev.Type {
	case RentalReturned:
		fee := 0.0
		if ev.RentalFee != nil {
			fee = *ev.RentalFee
		}
		return fmt.Sprintf("[%s] Rental returned | rental_id=%s | customer=%q (%s) | movie=%q (%s) | out=%s | returned=%s | fee=%.2f\n",
			ev.OccurredAt, ev.RentalID, ev.CustomerName, ev.CustomerID, ev.MovieTitle, ev.MovieID, ev.DateOut, ev.DateReturned, fee)
	default:
		return fmt.Sprintf("[%s] Rental created | rental_id=%s | customer=%q (%s) | movie=%q (%s) | out=%s | rate=%.2f\n",
			ev.OccurredAt, ev.RentalID, ev.CustomerName, ev.CustomerID, ev.MovieTitle, ev.MovieID, ev.DateOut, ev.DailyRate)
	}
}

// sleep waits for d or until ctx ends; false means ctx ended.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
