package model

import "time"

// Movie is an inventory record from the `movies` table.  NumberInStock is
// the count of physical copies currently on the shelf: checkout decrements
// it and a settled return increments it by exactly one.  DailyRentalRate is
// the price per day charged for new rentals; rentals themselves carry a
// frozen copy of the rate (see MovieSnapshot).
//
// Fields:
//  ID              – primary key identifier.
//  Title           – movie title.
//  GenreID         – foreign key into genres.
//  GenreName       – joined genre name, populated on reads.
//  NumberInStock   – copies available for checkout (0..255).
//  DailyRentalRate – price per rental day.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Movie struct {
    ID              uint64    `json:"id"`                   // movies.id
    Title           string    `json:"title"`                // movies.title
    GenreID         uint64    `json:"genre_id"`             // movies.genre_id
    GenreName       string    `json:"genre_name,omitempty"` // genres.name (joined)
    NumberInStock   uint32    `json:"number_in_stock"`      // movies.number_in_stock
    DailyRentalRate float64   `json:"daily_rental_rate"`    // movies.daily_rental_rate
    CreatedAt       time.Time `json:"created_at"`           // movies.created_at
    UpdatedAt       time.Time `json:"updated_at"`           // movies.updated_at
}
