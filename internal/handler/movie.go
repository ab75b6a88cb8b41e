package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/video-rental-store/internal/model"
    "github.com/iliyamo/video-rental-store/internal/repository"
)

// MovieHandler exposes CRUD endpoints for the movie inventory.  Stock is
// never written through these endpoints beyond the initial count; checkout
// and return adjust it with their own guarded updates.
type MovieHandler struct {
	Movies *repository.MovieRepo
	Genres *repository.GenreRepo
}

func NewMovieHandler(m *repository.MovieRepo, g *repository.GenreRepo) *MovieHandler {
	return &MovieHandler{Movies: m, Genres: g}
}

type movieReq struct {
	Title           string  `json:"title"`
	GenreID         string  `json:"genre_id"`
	NumberInStock   uint32  `json:"number_in_stock"`
	DailyRentalRate float64 `json:"daily_rental_rate"`
}

// maxStock mirrors the TINYINT UNSIGNED column backing number_in_stock.
const maxStock = 255

func (r *movieReq) validate() (genreID uint64, msg string) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return 0, "title is required"
	}
	genreID, ok := parseID(r.GenreID)
	if !ok {
		return 0, "genre_id is required"
	}
	if r.NumberInStock > maxStock {
		return 0, "number_in_stock out of range"
	}
	if r.DailyRentalRate < 0 {
		return 0, "daily_rental_rate must not be negative"
	}
	return genreID, ""
}

// CreateMovie handles POST /v1/movies.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var body movieReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	genreID, msg := body.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	// Resolve the genre up front so a bad reference yields a 400 rather
	// than a foreign key error.
	g, err := h.Genres.GetByID(ctx, genreID)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown genre_id"})
		}
		return serverError(c, "movies", "db error", err)
	}
	m := &model.Movie{
		Title:           body.Title,
		GenreID:         g.ID,
		GenreName:       g.Name,
		NumberInStock:   body.NumberInStock,
		DailyRentalRate: body.DailyRentalRate,
	}
	if err := h.Movies.Create(ctx, m); err != nil {
		return serverError(c, "movies", "could not create movie", err)
	}
	return c.JSON(http.StatusCreated, m)
}

// GetMovie handles GET /v1/movies/:id.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return serverError(c, "movies", "db error", err)
	}
	return c.JSON(http.StatusOK, m)
}

// ListMovies handles GET /v1/movies and returns the catalogue with joined
// genre names.  The route sits behind the response cache.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	items, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return serverError(c, "movies", "db error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateMovie handles PUT /v1/movies/:id.  Changing the daily rate only
// affects future checkouts; open rentals keep the rate frozen at checkout.
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body movieReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	genreID, msg := body.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Genres.GetByID(ctx, genreID); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown genre_id"})
		}
		return serverError(c, "movies", "db error", err)
	}
	m := &model.Movie{
		ID:              id,
		Title:           body.Title,
		GenreID:         genreID,
		NumberInStock:   body.NumberInStock,
		DailyRentalRate: body.DailyRentalRate,
	}
	if err := h.Movies.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return serverError(c, "movies", "update failed", err)
	}
	updated, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return serverError(c, "movies", "db error", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteMovie handles DELETE /v1/movies/:id.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return serverError(c, "movies", "delete failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
