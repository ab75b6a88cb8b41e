package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/video-rental-store/internal/model"
    "github.com/iliyamo/video-rental-store/internal/repository"
)

// RentalHandler exposes checkout and rental lookup endpoints.  Checkout is
// the mirror image of a return: it takes one copy off the shelf with a
// guarded decrement and freezes the customer and movie details into the
// new rental row inside the same transaction.
type RentalHandler struct {
	Rentals   *repository.RentalRepo
	Customers *repository.CustomerRepo
	Movies    *repository.MovieRepo
}

func NewRentalHandler(r *repository.RentalRepo, c *repository.CustomerRepo, m *repository.MovieRepo) *RentalHandler {
	return &RentalHandler{Rentals: r, Customers: c, Movies: m}
}

type checkoutReq struct {
	CustomerID string `json:"customer_id"`
	MovieID    string `json:"movie_id"`
}

// Checkout handles POST /v1/rentals and opens a new rental.
//
// Responses: 201 with the new rental; 400 when an id is missing or
// malformed; 404 when the customer or movie does not exist; 409 when the
// movie has no copies in stock.
func (h *RentalHandler) Checkout(c echo.Context) error {
	var body checkoutReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	customerID, ok := parseID(body.CustomerID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id is required"})
	}
	movieID, ok := parseID(body.MovieID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id is required"})
	}

	ctx := c.Request().Context()

	cust, err := h.Customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return serverError(c, "rentals", "db error", err)
	}
	mov, err := h.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return serverError(c, "rentals", "db error", err)
	}

	tx, err := h.Rentals.DB().BeginTx(ctx, nil)
	if err != nil {
		return serverError(c, "rentals", "failed to start transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// The decrement is the contention point: it only succeeds while stock
	// is positive, so two clerks cannot hand out the last copy twice.
	if err := h.Movies.DecrementStockTx(ctx, tx, mov.ID); err != nil {
		if errors.Is(err, repository.ErrOutOfStock) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie not in stock"})
		}
		return serverError(c, "rentals", "failed to reserve stock", err)
	}

	rt := &model.Rental{
		Customer: model.CustomerSnapshot{ID: cust.ID, Name: cust.Name, Phone: cust.Phone},
		Movie:    model.MovieSnapshot{ID: mov.ID, Title: mov.Title, DailyRentalRate: mov.DailyRentalRate},
	}
	if err := h.Rentals.CreateTx(ctx, tx, rt); err != nil {
		return serverError(c, "rentals", "failed to create rental", err)
	}

	if err := tx.Commit(); err != nil {
		return serverError(c, "rentals", "failed to commit", err)
	}
	committed = true

	return c.JSON(http.StatusCreated, rt)
}

// GetRental handles GET /v1/rentals/:id.
func (h *RentalHandler) GetRental(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rt, err := h.Rentals.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRentalNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
		}
		return serverError(c, "rentals", "db error", err)
	}
	return c.JSON(http.StatusOK, rt)
}

// ListByCustomer handles GET /v1/customers/:id/rentals and returns the
// customer's rental history, newest first.
func (h *RentalHandler) ListByCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Customers.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return serverError(c, "rentals", "db error", err)
	}
	items, err := h.Rentals.ListByCustomer(ctx, id)
	if err != nil {
		return serverError(c, "rentals", "db error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
