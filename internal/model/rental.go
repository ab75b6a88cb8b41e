package model

import "time"

// CustomerSnapshot is the customer data copied into a rental at checkout.
// It is a frozen value, not a live reference: later edits to the customer
// record do not propagate into existing rentals.
type CustomerSnapshot struct {
    ID    uint64 `json:"id"`    // rentals.customer_id
    Name  string `json:"name"`  // rentals.customer_name
    Phone string `json:"phone"` // rentals.customer_phone
}

// MovieSnapshot is the movie data copied into a rental at checkout.
// DailyRentalRate is the rate in effect when the rental began; the fee at
// return time is always computed from this frozen rate, never from the
// live movie record.
type MovieSnapshot struct {
    ID              uint64  `json:"id"`                // rentals.movie_id
    Title           string  `json:"title"`             // rentals.movie_title
    DailyRentalRate float64 `json:"daily_rental_rate"` // rentals.movie_daily_rate
}

// Return holds the settlement data of a closed rental.  Grouping the return
// timestamp and the fee into one optional value makes the half-settled state
// (fee without a return date, or vice versa) unrepresentable.
type Return struct {
    DateReturned time.Time `json:"date_returned"` // rentals.date_returned
    Fee          float64   `json:"rental_fee"`    // rentals.rental_fee
}

// Rental records one loan of one movie to one customer.  A rental is open
// while Return is nil and settled once the returns workflow stamps it; the
// transition happens exactly once.
//
// Fields:
//  ID        – primary key identifier.
//  Customer  – customer snapshot taken at checkout.
//  Movie     – movie snapshot taken at checkout.
//  DateOut   – when the movie left the store.
//  Return    – settlement data; nil while the rental is open.
//  CreatedAt – creation timestamp.
type Rental struct {
    ID        uint64           `json:"id"`               // rentals.id
    Customer  CustomerSnapshot `json:"customer"`         // embedded snapshot
    Movie     MovieSnapshot    `json:"movie"`            // embedded snapshot
    DateOut   time.Time        `json:"date_out"`         // rentals.date_out
    Return    *Return          `json:"return,omitempty"` // nil = still open
    CreatedAt time.Time        `json:"created_at"`       // rentals.created_at
}

// Settled reports whether the rental has been returned and its fee charged.
func (r *Rental) Settled() bool { return r.Return != nil }
