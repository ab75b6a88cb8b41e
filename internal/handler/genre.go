package handler // handler package contains catalogue management handlers

import (
    "errors"   // sentinel error comparisons
    "net/http" // status code constants
    "strings"  // trimming utilities

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/video-rental-store/internal/model"
    "github.com/iliyamo/video-rental-store/internal/repository"
)

// GenreHandler exposes CRUD endpoints for movie genres.
type GenreHandler struct {
	Genres *repository.GenreRepo
}

func NewGenreHandler(g *repository.GenreRepo) *GenreHandler {
	return &GenreHandler{Genres: g}
}

// CreateGenre handles POST /v1/genres.
func (h *GenreHandler) CreateGenre(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	g := &model.Genre{Name: name}
	if err := h.Genres.Create(c.Request().Context(), g); err != nil {
		if strings.Contains(err.Error(), "1062") { // duplicate key
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre name already exists"})
		}
		return serverError(c, "genres", "could not create genre", err)
	}
	return c.JSON(http.StatusCreated, g)
}

// GetGenre handles GET /v1/genres/:id.
func (h *GenreHandler) GetGenre(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return serverError(c, "genres", "db error", err)
	}
	return c.JSON(http.StatusOK, g)
}

// ListGenres handles GET /v1/genres and returns the full catalogue of
// genres.  The route sits behind the response cache.
func (h *GenreHandler) ListGenres(c echo.Context) error {
	items, err := h.Genres.List(c.Request().Context())
	if err != nil {
		return serverError(c, "genres", "db error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateGenre handles PUT /v1/genres/:id and renames a genre.
func (h *GenreHandler) UpdateGenre(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Genres.UpdateName(c.Request().Context(), id, name); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre name already exists"})
		}
		return serverError(c, "genres", "update failed", err)
	}
	updated, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "genres", "db error", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteGenre handles DELETE /v1/genres/:id.
func (h *GenreHandler) DeleteGenre(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Genres.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		if strings.Contains(err.Error(), "1451") { // rows in movies still reference it
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre is still in use"})
		}
		return serverError(c, "genres", "delete failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
