package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/video-rental-store/internal/model"
)

// CustomerRepo provides CRUD operations for the customers table.
type CustomerRepo struct {
    db *sql.DB
}

// NewCustomerRepo returns a new CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Create inserts a new customer and populates the generated ID on the model.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO customers (name, phone, is_gold) VALUES (?, ?, ?)`,
        c.Name, c.Phone, c.IsGold)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM customers WHERE id = ?`, c.ID,
    ).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID returns a single customer or ErrCustomerNotFound.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
    var c model.Customer
    err := r.db.QueryRowContext(ctx,
        `SELECT id, name, phone, is_gold, created_at, updated_at FROM customers WHERE id = ?`, id,
    ).Scan(&c.ID, &c.Name, &c.Phone, &c.IsGold, &c.CreatedAt, &c.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrCustomerNotFound
    }
    if err != nil {
        return nil, err
    }
    return &c, nil
}

// List returns all customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, phone, is_gold, created_at, updated_at FROM customers ORDER BY name`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    customers := make([]model.Customer, 0)
    for rows.Next() {
        var c model.Customer
        if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.IsGold, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, err
        }
        customers = append(customers, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return customers, nil
}

// Update rewrites the mutable fields of a customer. Existing rentals keep
// the snapshot taken at checkout; they are not touched here.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE customers SET name = ?, phone = ?, is_gold = ? WHERE id = ?`,
        c.Name, c.Phone, c.IsGold, c.ID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        if _, gErr := r.GetByID(ctx, c.ID); gErr != nil {
            return gErr
        }
    }
    return nil
}

// Delete removes a customer record.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrCustomerNotFound
    }
    return nil
}
