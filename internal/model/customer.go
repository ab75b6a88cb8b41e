package model

import "time"

// Customer represents a store customer as stored in the `customers` table.
// Gold members exist for future discount policies; the returns workflow
// treats all customers identically.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – customer display name.
//  Phone     – contact phone number.
//  IsGold    – whether the customer has a gold membership.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Customer struct {
    ID        uint64    `json:"id"`         // customers.id
    Name      string    `json:"name"`       // customers.name
    Phone     string    `json:"phone"`      // customers.phone
    IsGold    bool      `json:"is_gold"`    // customers.is_gold
    CreatedAt time.Time `json:"created_at"` // customers.created_at
    UpdatedAt time.Time `json:"updated_at"` // customers.updated_at
}
