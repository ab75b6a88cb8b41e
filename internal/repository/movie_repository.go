package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/video-rental-store/internal/model"
)

// MovieRepo provides access to the movies table, which doubles as the
// store's inventory: number_in_stock is the count of copies on the shelf.
// Stock mutations are expressed as atomic relative UPDATEs so concurrent
// checkouts and returns never lose an increment or take the shelf below
// zero.
type MovieRepo struct {
    db *sql.DB
}

// NewMovieRepo returns a new MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span the rental and movie tables.
func (r *MovieRepo) DB() *sql.DB { return r.db }

// Create inserts a new movie and populates the generated ID on the model.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO movies (title, genre_id, number_in_stock, daily_rental_rate) VALUES (?, ?, ?, ?)`,
        m.Title, m.GenreID, m.NumberInStock, m.DailyRentalRate)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM movies WHERE id = ?`, m.ID,
    ).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// GetByID returns a single movie with its genre name joined in, or
// ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
    var m model.Movie
    err := r.db.QueryRowContext(ctx,
        `SELECT m.id, m.title, m.genre_id, g.name, m.number_in_stock, m.daily_rental_rate, m.created_at, m.updated_at
         FROM movies m
         JOIN genres g ON g.id = m.genre_id
         WHERE m.id = ?`, id,
    ).Scan(&m.ID, &m.Title, &m.GenreID, &m.GenreName, &m.NumberInStock, &m.DailyRentalRate, &m.CreatedAt, &m.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrMovieNotFound
    }
    if err != nil {
        return nil, err
    }
    return &m, nil
}

// List returns all movies with genre names, ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT m.id, m.title, m.genre_id, g.name, m.number_in_stock, m.daily_rental_rate, m.created_at, m.updated_at
         FROM movies m
         JOIN genres g ON g.id = m.genre_id
         ORDER BY m.title`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    movies := make([]model.Movie, 0)
    for rows.Next() {
        var m model.Movie
        if err := rows.Scan(&m.ID, &m.Title, &m.GenreID, &m.GenreName, &m.NumberInStock, &m.DailyRentalRate, &m.CreatedAt, &m.UpdatedAt); err != nil {
            return nil, err
        }
        movies = append(movies, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return movies, nil
}

// Update rewrites title, genre and daily rate. The stock count is only
// mutated through IncrementStockTx/DecrementStockTx; rentals keep the rate
// snapshot taken at checkout.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE movies SET title = ?, genre_id = ?, daily_rental_rate = ? WHERE id = ?`,
        m.Title, m.GenreID, m.DailyRentalRate, m.ID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        if _, gErr := r.GetByID(ctx, m.ID); gErr != nil {
            return gErr
        }
    }
    return nil
}

// Delete removes a movie from the inventory.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrMovieNotFound
    }
    return nil
}

// IncrementStockTx atomically adds one copy back to the shelf within the
// provided transaction. The increment is pushed into the database rather
// than read-modify-write in the application, so concurrent returns of the
// same movie cannot lose an update. Returns ErrMovieNotFound when the
// movie row is missing.
func (r *MovieRepo) IncrementStockTx(ctx context.Context, tx *sql.Tx, movieID uint64) error {
    res, err := tx.ExecContext(ctx,
        `UPDATE movies SET number_in_stock = number_in_stock + 1 WHERE id = ?`, movieID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrMovieNotFound
    }
    return nil
}

// DecrementStockTx atomically takes one copy off the shelf within the
// provided transaction. The number_in_stock > 0 guard makes the last copy
// a first-come-first-served race decided by the database; losers get
// ErrOutOfStock. A missing row is indistinguishable from an empty shelf
// here, so callers should resolve the movie first when they need to tell
// the two apart.
func (r *MovieRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, movieID uint64) error {
    res, err := tx.ExecContext(ctx,
        `UPDATE movies SET number_in_stock = number_in_stock - 1 WHERE id = ? AND number_in_stock > 0`, movieID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrOutOfStock
    }
    return nil
}
