package repository

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "github.com/iliyamo/video-rental-store/internal/model"
)

// RentalRepo provides data access to the rentals table.  A rental row
// embeds customer and movie snapshots taken at checkout; the only mutation
// this repository supports after creation is the one-shot settlement
// performed by SettleTx.  All timestamp fields are stored in UTC.
type RentalRepo struct {
    db *sql.DB
}

// NewRentalRepo returns a new RentalRepo bound to the provided database.
func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span the rental and movie tables.
func (r *RentalRepo) DB() *sql.DB { return r.db }

const rentalColumns = `id, customer_id, customer_name, customer_phone,
       movie_id, movie_title, movie_daily_rate,
       date_out, date_returned, rental_fee, created_at`

// scanRental assembles a model.Rental from one row.  The date_returned and
// rental_fee columns are written together by SettleTx and must be null or
// non-null as a pair; a half-null pair means the row was corrupted outside
// the application and is reported as an error rather than guessed at.
func scanRental(row interface{ Scan(dest ...any) error }) (*model.Rental, error) {
    var (
        rt           model.Rental
        dateReturned sql.NullTime
        fee          sql.NullFloat64
    )
    err := row.Scan(
        &rt.ID, &rt.Customer.ID, &rt.Customer.Name, &rt.Customer.Phone,
        &rt.Movie.ID, &rt.Movie.Title, &rt.Movie.DailyRentalRate,
        &rt.DateOut, &dateReturned, &fee, &rt.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    if dateReturned.Valid != fee.Valid {
        return nil, fmt.Errorf("rental %d: date_returned/rental_fee pair is half-set", rt.ID)
    }
    if dateReturned.Valid {
        rt.Return = &model.Return{DateReturned: dateReturned.Time, Fee: fee.Float64}
    }
    return &rt, nil
}

// CreateTx inserts a new rental within the scope of an existing transaction,
// copying the customer and movie snapshots into the row.  It populates the
// generated ID and the database-assigned timestamps on the provided model.
// The caller must commit or roll back the transaction.
func (r *RentalRepo) CreateTx(ctx context.Context, tx *sql.Tx, rt *model.Rental) error {
    res, err := tx.ExecContext(ctx,
        `INSERT INTO rentals (customer_id, customer_name, customer_phone,
                              movie_id, movie_title, movie_daily_rate)
         VALUES (?, ?, ?, ?, ?, ?)`,
        rt.Customer.ID, rt.Customer.Name, rt.Customer.Phone,
        rt.Movie.ID, rt.Movie.Title, rt.Movie.DailyRentalRate,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rt.ID = uint64(id)
    // Query back the row to pick up date_out and created_at defaults.
    return tx.QueryRowContext(ctx,
        `SELECT date_out, created_at FROM rentals WHERE id = ?`, rt.ID,
    ).Scan(&rt.DateOut, &rt.CreatedAt)
}

// GetByID returns a single rental or ErrRentalNotFound.
func (r *RentalRepo) GetByID(ctx context.Context, id uint64) (*model.Rental, error) {
    rt, err := scanRental(r.db.QueryRowContext(ctx,
        `SELECT `+rentalColumns+` FROM rentals WHERE id = ?`, id))
    if err == sql.ErrNoRows {
        return nil, ErrRentalNotFound
    }
    return rt, err
}

// FindOpenOrLatest locates the rental a return request refers to.  An open
// rental (date_returned still null) is always preferred; among several
// candidates the most recently checked out wins.  This makes repeat rentals
// of the same movie by the same customer resolve to the loan that is
// actually outstanding.  Returns ErrRentalNotFound when the pair has no
// rental at all.
func (r *RentalRepo) FindOpenOrLatest(ctx context.Context, customerID, movieID uint64) (*model.Rental, error) {
    rt, err := scanRental(r.db.QueryRowContext(ctx,
        `SELECT `+rentalColumns+`
         FROM rentals
         WHERE customer_id = ? AND movie_id = ?
         ORDER BY (date_returned IS NULL) DESC, date_out DESC, id DESC
         LIMIT 1`,
        customerID, movieID))
    if err == sql.ErrNoRows {
        return nil, ErrRentalNotFound
    }
    return rt, err
}

// SettleTx closes a rental: it stamps the return time and the fee in one
// conditional UPDATE guarded by `date_returned IS NULL`.  The guard is what
// makes settlement race-safe: when two requests target the same rental the
// database lets exactly one UPDATE through, and the loser sees zero rows
// affected and gets ErrAlreadyReturned.  The caller must commit or roll
// back the transaction.
func (r *RentalRepo) SettleTx(ctx context.Context, tx *sql.Tx, rentalID uint64, returnedAt time.Time, fee float64) error {
    res, err := tx.ExecContext(ctx,
        `UPDATE rentals SET date_returned = ?, rental_fee = ?
         WHERE id = ? AND date_returned IS NULL`,
        returnedAt.UTC().Format("2006-01-02 15:04:05"), fee, rentalID,
    )
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrAlreadyReturned
    }
    return nil
}

// ListByCustomer returns all rentals for one customer, newest first.
func (r *RentalRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Rental, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+rentalColumns+`
         FROM rentals
         WHERE customer_id = ?
         ORDER BY date_out DESC, id DESC`,
        customerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    rentals := make([]model.Rental, 0)
    for rows.Next() {
        rt, err := scanRental(rows)
        if err != nil {
            return nil, err
        }
        rentals = append(rentals, *rt)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return rentals, nil
}
