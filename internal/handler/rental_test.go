package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/repository"
)

func newRentalFixture(t *testing.T) (*RentalHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewRentalHandler(
		repository.NewRentalRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewMovieRepo(db),
	)
	return h, mock
}

func postCheckout(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/rentals", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectCustomerAndMovieLookups(mock sqlmock.Sqlmock, now time.Time) {
	mock.ExpectQuery("SELECT id, name, phone, is_gold, created_at, updated_at FROM customers").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "is_gold", "created_at", "updated_at"}).
			AddRow(3, "Ada Lovelace", "555-0101", false, now, now))
	mock.ExpectQuery("SELECT m.id, m.title, m.genre_id, g.name").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "genre_id", "genre_name", "number_in_stock", "daily_rental_rate", "created_at", "updated_at"}).
			AddRow(9, "The Matrix", 1, "Sci-Fi", 10, 2.0, now, now))
}

func TestCheckout_Success(t *testing.T) {
	h, mock := newRentalFixture(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	expectCustomerAndMovieLookups(mock, now)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock - 1`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO rentals").
		WithArgs(uint64(3), "Ada Lovelace", "555-0101", uint64(9), "The Matrix", 2.0).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT date_out, created_at FROM rentals").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"date_out", "created_at"}).AddRow(now, now))
	mock.ExpectCommit()

	c, rec := postCheckout(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, h.Checkout(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"The Matrix"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_OutOfStock(t *testing.T) {
	h, mock := newRentalFixture(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	expectCustomerAndMovieLookups(mock, now)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock - 1`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, rec := postCheckout(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, h.Checkout(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "not in stock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_UnknownCustomer(t *testing.T) {
	h, mock := newRentalFixture(t)

	mock.ExpectQuery("SELECT id, name, phone, is_gold, created_at, updated_at FROM customers").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "is_gold", "created_at", "updated_at"}))

	c, rec := postCheckout(`{"customer_id":"3","movie_id":"9"}`)
	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_Validation(t *testing.T) {
	h, mock := newRentalFixture(t)

	c, rec := postCheckout(`{"customer_id":"","movie_id":"9"}`)
	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseID(t *testing.T) {
	cases := []struct {
		raw  string
		want uint64
		ok   bool
	}{
		{"7", 7, true},
		{" 7 ", 7, true},
		{"", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"1.5", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseID(tc.raw)
		assert.Equal(t, tc.ok, ok, "parseID(%q)", tc.raw)
		assert.Equal(t, tc.want, got, "parseID(%q)", tc.raw)
	}
}
