// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver error strings. For example, ErrAlreadyReturned signals that a
// conditional settlement found the rental already closed, while
// ErrOutOfStock signals that a checkout raced with the last copy leaving
// the shelf.
package repository

import "errors"

// ErrRentalNotFound is returned when no rental exists for the requested
// customer/movie combination. Handlers should translate this into an
// HTTP 404 response.
var ErrRentalNotFound = errors.New("rental not found")

// ErrAlreadyReturned is returned when a rental targeted for settlement
// already has a return date. The conditional UPDATE used by SettleTx
// reports this for both the plain repeat-request case and the case where
// a concurrent request settled the rental first. Handlers should
// translate this into an HTTP 400 response.
var ErrAlreadyReturned = errors.New("rental already returned")

// ErrMovieNotFound is returned when a movie id does not resolve to an
// inventory record.
var ErrMovieNotFound = errors.New("movie not found")

// ErrOutOfStock is returned when a checkout cannot decrement the stock
// count because no copies remain.
var ErrOutOfStock = errors.New("movie out of stock")

// ErrGenreNotFound is returned when a genre id does not resolve to a row.
var ErrGenreNotFound = errors.New("genre not found")

// ErrCustomerNotFound is returned when a customer id does not resolve to
// a row.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrEmailExists is returned when registering a user with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")
