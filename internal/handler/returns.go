package handler

import (
    "context"  // background context for the fire-and-forget event publish
    "errors"   // errors.Is comparisons against repository sentinels
    "log"      // operator-visible logging of data faults
    "net/http" // HTTP status codes
    "time"     // settlement timestamps

    "github.com/google/uuid"      // event ids for published messages
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/video-rental-store/internal/model"
    "github.com/iliyamo/video-rental-store/internal/pricing"
    "github.com/iliyamo/video-rental-store/internal/queue"
    "github.com/iliyamo/video-rental-store/internal/repository"
    queue_publisher "github.com/iliyamo/video-rental-store/internal/service"
)

// ReturnsHandler settles rentals: it locates the outstanding rental for a
// customer/movie pair, charges the fee, stamps the return and puts the
// copy back on the shelf.  All methods assume JWT authentication has
// already been performed by middleware.  The settlement and the stock
// increment run inside one transaction; the settlement itself is guarded
// by a conditional UPDATE so concurrent requests for the same rental
// cannot both succeed.
type ReturnsHandler struct {
    RentalRepo *repository.RentalRepo // access to rentals for lookup and settlement
    MovieRepo  *repository.MovieRepo  // access to movies for the stock increment
    Now        func() time.Time       // clock, swappable in tests

    // Publish emits the settled-rental event after commit, swappable in
    // tests.  Defaults to the RabbitMQ publisher.
    Publish func(ctx context.Context, ev queue.RentalReturnedEvent) error
}

// NewReturnsHandler constructs a ReturnsHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewReturnsHandler(rentalRepo *repository.RentalRepo, movieRepo *repository.MovieRepo) *ReturnsHandler {
    if rentalRepo == nil || movieRepo == nil {
        panic("nil repository passed to NewReturnsHandler")
    }
    return &ReturnsHandler{
        RentalRepo: rentalRepo,
        MovieRepo:  movieRepo,
        Now:        time.Now,
        Publish:    queue_publisher.PublishRentalReturned,
    }
}

// returnReq is the body of POST /v1/returns.  The identifiers travel as
// strings so the handler can tell "missing" from "malformed" before any
// store lookup happens.
type returnReq struct {
    CustomerID string `json:"customer_id"`
    MovieID    string `json:"movie_id"`
}

// settledRentalResp is the outward projection of a settled rental.  It
// exposes both timestamps, the fee and the snapshots verbatim and nothing
// else.
type settledRentalResp struct {
    DateOut      time.Time              `json:"date_out"`
    DateReturned time.Time              `json:"date_returned"`
    RentalFee    float64                `json:"rental_fee"`
    Customer     model.CustomerSnapshot `json:"customer"`
    Movie        model.MovieSnapshot    `json:"movie"`
}

// ProcessReturn handles POST /v1/returns.  The flow is: validate the two
// identifiers, locate the rental, reject an already-settled one, compute
// the fee from the time elapsed since checkout using the daily rate frozen
// in the rental's movie snapshot, then settle and restore stock in one
// transaction.
//
// Responses: 200 with the settled rental projection; 400 when an id is
// missing/malformed or the rental was already returned; 404 when the
// customer/movie pair has no rental at all; 500 on storage failures.
func (h *ReturnsHandler) ProcessReturn(c echo.Context) error {
    var body returnReq
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

    rt, err := h.RentalRepo.FindOpenOrLatest(ctx, customerID, movieID)
    if err != nil {
        if errors.Is(err, repository.ErrRentalNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "no rental found for this customer and movie"})
        }
        return serverError(c, "returns", "database error", err)
    }
    if rt.Settled() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "rental already returned"})
    }

    returnedAt := h.Now().UTC()
    fee := pricing.Fee(rt.DateOut, returnedAt, rt.Movie.DailyRentalRate)

    tx, err := h.RentalRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return serverError(c, "returns", "failed to start transaction", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := h.RentalRepo.SettleTx(ctx, tx, rt.ID, returnedAt, fee); err != nil {
        if errors.Is(err, repository.ErrAlreadyReturned) {
            // A concurrent request settled this rental between our read and
            // the conditional UPDATE; it already restored the stock.
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "rental already returned"})
        }
        return serverError(c, "returns", "failed to settle rental", err)
    }

    if err := h.MovieRepo.IncrementStockTx(ctx, tx, rt.Movie.ID); err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            // The inventory record is gone while a rental still points at
            // it.  The rental is the source of truth, so the settlement
            // stands; the missing row is left to reconciliation.
            log.Printf("returns: movie %d missing during stock restore for rental %d", rt.Movie.ID, rt.ID)
        } else {
            return serverError(c, "returns", "failed to restore stock", err)
        }
    }

    if err := tx.Commit(); err != nil {
        return serverError(c, "returns", "failed to commit", err)
    }
    committed = true

    clerkID, _ := getUserID(c)
    log.Printf("returns: rental %d settled by user %d, fee %.2f", rt.ID, clerkID, fee)

    rt.Return = &model.Return{DateReturned: returnedAt, Fee: fee}

    // Best-effort event for downstream consumers; a broker outage must not
    // fail a settlement that already committed.
    ev := queue.RentalReturnedEvent{
        EventID:      uuid.NewString(),
        RentalID:     rt.ID,
        CustomerID:   rt.Customer.ID,
        CustomerName: rt.Customer.Name,
        MovieID:      rt.Movie.ID,
        MovieTitle:   rt.Movie.Title,
        DateOut:      rt.DateOut.UTC().Format(time.RFC3339),
        DateReturned: returnedAt.Format(time.RFC3339),
        RentalFee:    fee,
    }
    go func() { _ = h.Publish(context.Background(), ev) }()

    return c.JSON(http.StatusOK, settledRentalResp{
        DateOut:      rt.DateOut,
        DateReturned: returnedAt,
        RentalFee:    fee,
        Customer:     rt.Customer,
        Movie:        rt.Movie,
    })
}
