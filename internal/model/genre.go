package model

import "time"

// Genre is a movie category as stored in the `genres` table.  Genres are
// referenced by movies and exposed on the public catalogue.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique genre name.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Genre struct {
    ID        uint64    `json:"id"`         // genres.id
    Name      string    `json:"name"`       // genres.name
    CreatedAt time.Time `json:"created_at"` // genres.created_at
    UpdatedAt time.Time `json:"updated_at"` // genres.updated_at
}
