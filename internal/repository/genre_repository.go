package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/video-rental-store/internal/model"
)

// GenreRepo provides CRUD operations for the genres table.
type GenreRepo struct {
    db *sql.DB
}

// NewGenreRepo returns a new GenreRepo bound to the given database.
func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

// Create inserts a new genre and populates the generated ID on the model.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
    res, err := r.db.ExecContext(ctx, `INSERT INTO genres (name) VALUES (?)`, g.Name)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    g.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM genres WHERE id = ?`, g.ID,
    ).Scan(&g.CreatedAt, &g.UpdatedAt)
}

// GetByID returns a single genre or ErrGenreNotFound.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (*model.Genre, error) {
    var g model.Genre
    err := r.db.QueryRowContext(ctx,
        `SELECT id, name, created_at, updated_at FROM genres WHERE id = ?`, id,
    ).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrGenreNotFound
    }
    if err != nil {
        return nil, err
    }
    return &g, nil
}

// List returns all genres ordered by name.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, created_at, updated_at FROM genres ORDER BY name`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    genres := make([]model.Genre, 0)
    for rows.Next() {
        var g model.Genre
        if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
            return nil, err
        }
        genres = append(genres, g)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return genres, nil
}

// UpdateName renames a genre. It returns ErrGenreNotFound when the id does
// not exist.
func (r *GenreRepo) UpdateName(ctx context.Context, id uint64, name string) error {
    res, err := r.db.ExecContext(ctx, `UPDATE genres SET name = ? WHERE id = ?`, name, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // Distinguish "missing row" from "same name written twice".
        if _, gErr := r.GetByID(ctx, id); gErr != nil {
            return gErr
        }
    }
    return nil
}

// Delete removes a genre. Deleting a genre that still has movies fails with
// a foreign key error from the driver; handlers map that to a conflict.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrGenreNotFound
    }
    return nil
}
