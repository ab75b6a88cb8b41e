// Package queue defines message payloads exchanged over the message broker.
package queue

// RentalReturnedEvent is published after a rental settlement commits.
// It carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.  EventID is a
// UUID assigned by the publisher so consumers can deduplicate redeliveries.
type RentalReturnedEvent struct {
    EventID      string  `json:"event_id"`
    RentalID     uint64  `json:"rental_id"`
    CustomerID   uint64  `json:"customer_id"`
    CustomerName string  `json:"customer_name"`
    MovieID      uint64  `json:"movie_id"`
    MovieTitle   string  `json:"movie_title"`
    DateOut      string  `json:"date_out"`
    DateReturned string  `json:"date_returned"`
    RentalFee    float64 `json:"rental_fee"`
}
