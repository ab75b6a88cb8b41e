package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieRepo_IncrementStockTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMovieRepo(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock \+ 1 WHERE id = \?`).
			WithArgs(uint64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		assert.NoError(t, repo.IncrementStockTx(ctx, tx, 9))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingRow", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock \+ 1 WHERE id = \?`).
			WithArgs(uint64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.IncrementStockTx(ctx, tx, 9), ErrMovieNotFound)
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMovieRepo_DecrementStockTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMovieRepo(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock - 1 WHERE id = \? AND number_in_stock > 0`).
			WithArgs(uint64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		assert.NoError(t, repo.DecrementStockTx(ctx, tx, 9))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyShelf", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock - 1 WHERE id = \? AND number_in_stock > 0`).
			WithArgs(uint64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.DecrementStockTx(ctx, tx, 9), ErrOutOfStock)
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
