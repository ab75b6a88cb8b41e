package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/model"
)

var rentalCols = []string{
	"id", "customer_id", "customer_name", "customer_phone",
	"movie_id", "movie_title", "movie_daily_rate",
	"date_out", "date_returned", "rental_fee", "created_at",
}

func TestRentalRepo_FindOpenOrLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepo(db)
	ctx := context.Background()
	dateOut := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("OpenRental", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, nil, nil, dateOut)

		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs(uint64(3), uint64(9)).
			WillReturnRows(rows)

		rt, err := repo.FindOpenOrLatest(ctx, 3, 9)
		assert.NoError(t, err)
		require.NotNil(t, rt)
		assert.Equal(t, uint64(7), rt.ID)
		assert.False(t, rt.Settled())
		assert.Equal(t, "The Matrix", rt.Movie.Title)
		assert.Equal(t, 2.0, rt.Movie.DailyRentalRate)
	})

	t.Run("SettledRental", func(t *testing.T) {
		returned := dateOut.AddDate(0, 0, 7)
		rows := sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, returned, 14.0, dateOut)

		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs(uint64(3), uint64(9)).
			WillReturnRows(rows)

		rt, err := repo.FindOpenOrLatest(ctx, 3, 9)
		assert.NoError(t, err)
		require.NotNil(t, rt)
		require.True(t, rt.Settled())
		assert.Equal(t, 14.0, rt.Return.Fee)
		assert.Equal(t, returned, rt.Return.DateReturned)
	})

	t.Run("NoRental", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs(uint64(3), uint64(9)).
			WillReturnRows(sqlmock.NewRows(rentalCols))

		rt, err := repo.FindOpenOrLatest(ctx, 3, 9)
		assert.ErrorIs(t, err, ErrRentalNotFound)
		assert.Nil(t, rt)
	})

	t.Run("HalfSetSettlementPairIsAnError", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, dateOut.AddDate(0, 0, 7), nil, dateOut)

		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs(uint64(3), uint64(9)).
			WillReturnRows(rows)

		_, err := repo.FindOpenOrLatest(ctx, 3, 9)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrRentalNotFound)
	})
}

func TestRentalRepo_SettleTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepo(db)
	ctx := context.Background()
	returnedAt := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET date_returned = \\?, rental_fee = \\?").
			WithArgs("2025-03-08 10:00:00", 14.0, uint64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		assert.NoError(t, repo.SettleTx(ctx, tx, 7, returnedAt, 14.0))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyReturned", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET date_returned = \\?, rental_fee = \\?").
			WithArgs("2025-03-08 10:00:00", 14.0, uint64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.SettleTx(ctx, tx, 7, returnedAt, 14.0), ErrAlreadyReturned)
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepo_CreateTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepo(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO rentals").
		WithArgs(uint64(3), "Ada Lovelace", "555-0101", uint64(9), "The Matrix", 2.0).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT date_out, created_at FROM rentals WHERE id = \\?").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"date_out", "created_at"}).AddRow(now, now))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	rt := &model.Rental{
		Customer: model.CustomerSnapshot{ID: 3, Name: "Ada Lovelace", Phone: "555-0101"},
		Movie:    model.MovieSnapshot{ID: 9, Title: "The Matrix", DailyRentalRate: 2.0},
	}
	assert.NoError(t, repo.CreateTx(ctx, tx, rt))
	assert.NoError(t, tx.Commit())

	assert.Equal(t, uint64(42), rt.ID)
	assert.Equal(t, now, rt.DateOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}
