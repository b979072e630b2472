// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// RentalQueueName is the durable queue both event types are routed to.
const RentalQueueName = "rental.events"

// Event types.
const (
	RentalCreated  = "rental.created"
	RentalReturned = "rental.returned"
)

// RentalEvent is published after a checkout or a return has been stored.
// It carries the snapshot fields so consumers never need to read the
// primary database.
type RentalEvent struct {
	Type          string   `json:"type"`
	RentalID      string   `json:"rental_id"`
	CustomerID    string   `json:"customer_id"`
	CustomerName  string   `json:"customer_name"`
	MovieID       string   `json:"movie_id"`
	MovieTitle    string   `json:"movie_title"`
	DailyRate     float64  `json:"daily_rate"`
	DateOut       string   `json:"date_out"`
	DateReturned  string   `json:"date_returned,omitempty"`
	RentalFee     *float64 `json:"rental_fee,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}
