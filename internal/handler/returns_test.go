package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/queue"
	"github.com/iliyamo/video-rental-store/internal/repository"
)

var rentalCols = []string{
	"id", "customer_id", "customer_name", "customer_phone",
	"movie_id", "movie_title", "movie_daily_rate",
	"date_out", "date_returned", "rental_fee", "created_at",
}

// returnsFixture wires a ReturnsHandler against a mock database with a
// frozen clock and a captured publisher.
type returnsFixture struct {
	h      *ReturnsHandler
	mock   sqlmock.Sqlmock
	events chan queue.RentalReturnedEvent
	now    time.Time
}

func newReturnsFixture(t *testing.T) *returnsFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &returnsFixture{
		mock:   mock,
		events: make(chan queue.RentalReturnedEvent, 1),
		now:    time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC),
	}
	f.h = NewReturnsHandler(repository.NewRentalRepo(db), repository.NewMovieRepo(db))
	f.h.Now = func() time.Time { return f.now }
	f.h.Publish = func(_ context.Context, ev queue.RentalReturnedEvent) error {
		f.events <- ev
		return nil
	}
	return f
}

func postReturn(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/returns", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProcessReturn_Success(t *testing.T) {
	f := newReturnsFixture(t)
	dateOut := f.now.AddDate(0, 0, -7) // out exactly 7 days at rate 2.0 -> fee 14

	f.mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, nil, nil, dateOut))
	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE rentals SET date_returned").
		WithArgs("2025-03-08 10:00:00", 14.0, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock \+ 1`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, f.h.ProcessReturn(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"rental_fee":14`)
	assert.Contains(t, body, `"date_out"`)
	assert.Contains(t, body, `"date_returned"`)
	assert.Contains(t, body, `"Ada Lovelace"`)
	assert.Contains(t, body, `"The Matrix"`)
	assert.NoError(t, f.mock.ExpectationsWereMet())

	select {
	case ev := <-f.events:
		assert.Equal(t, uint64(7), ev.RentalID)
		assert.Equal(t, 14.0, ev.RentalFee)
		assert.NotEmpty(t, ev.EventID)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestProcessReturn_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"MissingCustomerID", `{"movie_id":"9"}`},
		{"MissingMovieID", `{"customer_id":"3"}`},
		{"MalformedID", `{"customer_id":"abc","movie_id":"9"}`},
		{"ZeroID", `{"customer_id":"0","movie_id":"9"}`},
		{"EmptyBody", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newReturnsFixture(t)
			c, rec := postReturn(tc.body)
			require.NoError(t, f.h.ProcessReturn(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// No store work may happen before validation passes.
			assert.NoError(t, f.mock.ExpectationsWereMet())
		})
	}
}

// Storage failures must surface as a generic 500; the driver error goes to
// the operator log, never to the client.
func TestProcessReturn_StorageFailure(t *testing.T) {
	t.Run("LookupFails", func(t *testing.T) {
		f := newReturnsFixture(t)
		f.mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs(uint64(3), uint64(9)).
			WillReturnError(errors.New("driver: bad connection"))

		c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
		require.NoError(t, f.h.ProcessReturn(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "database error")
		assert.NotContains(t, rec.Body.String(), "bad connection")
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("SettleFails", func(t *testing.T) {
		f := newReturnsFixture(t)
		dateOut := f.now.AddDate(0, 0, -7)

		f.mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs(uint64(3), uint64(9)).
			WillReturnRows(sqlmock.NewRows(rentalCols).
				AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
					dateOut, nil, nil, dateOut))
		f.mock.ExpectBegin()
		f.mock.ExpectExec("UPDATE rentals SET date_returned").
			WithArgs("2025-03-08 10:00:00", 14.0, uint64(7)).
			WillReturnError(errors.New("driver: bad connection"))
		f.mock.ExpectRollback()

		c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
		require.NoError(t, f.h.ProcessReturn(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to settle rental")
		assert.NotContains(t, rec.Body.String(), "bad connection")
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})
}

func TestProcessReturn_NoRentalFound(t *testing.T) {
	f := newReturnsFixture(t)
	f.mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(sqlmock.NewRows(rentalCols))

	c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, f.h.ProcessReturn(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestProcessReturn_AlreadyReturned(t *testing.T) {
	f := newReturnsFixture(t)
	dateOut := f.now.AddDate(0, 0, -7)
	returned := f.now.AddDate(0, 0, -1)

	f.mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, returned, 12.0, dateOut))

	c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, f.h.ProcessReturn(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already returned")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

// A concurrent settlement can land between the read and the conditional
// UPDATE; the loser must come back as already-returned and roll back.
// sqlmock cannot run N requests in true parallel, but it does not need to:
// the database serializes the guarded UPDATE, so every outcome of a
// concurrent burst reduces to one winner (TestProcessReturn_Success) and
// N-1 losers taking exactly this zero-rows path.
func TestProcessReturn_RaceLoser(t *testing.T) {
	f := newReturnsFixture(t)
	dateOut := f.now.AddDate(0, 0, -7)

	f.mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, nil, nil, dateOut))
	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE rentals SET date_returned").
		WithArgs("2025-03-08 10:00:00", 14.0, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectRollback()

	c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, f.h.ProcessReturn(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already returned")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

// A rental whose movie row vanished still settles; the increment is
// skipped and the fault is left to reconciliation.
func TestProcessReturn_MissingMovieRowStillSettles(t *testing.T) {
	f := newReturnsFixture(t)
	dateOut := f.now.AddDate(0, 0, -3)

	f.mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, nil, nil, dateOut))
	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE rentals SET date_returned").
		WithArgs("2025-03-08 10:00:00", 6.0, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock \+ 1`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectCommit()

	c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, f.h.ProcessReturn(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rental_fee":6`)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestProcessReturn_SameDayReturnIsFree(t *testing.T) {
	f := newReturnsFixture(t)
	dateOut := f.now.Add(-4 * time.Hour)

	f.mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(3), uint64(9)).
		WillReturnRows(sqlmock.NewRows(rentalCols).
			AddRow(7, 3, "Ada Lovelace", "555-0101", 9, "The Matrix", 2.0,
				dateOut, nil, nil, dateOut))
	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE rentals SET date_returned").
		WithArgs("2025-03-08 10:00:00", 0.0, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock \+ 1`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	c, rec := postReturn(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, f.h.ProcessReturn(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rental_fee":0`)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
