package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/video-rental-store/internal/handler"    // staff handlers
    "github.com/iliyamo/video-rental-store/internal/middleware" // JWT + role middlewares
)

// StaffHandlers bundles the handlers mounted on the staff-only group so
// RegisterStaff does not grow a parameter per resource.
type StaffHandlers struct {
	Returns   *handler.ReturnsHandler
	Rentals   *handler.RentalHandler
	Customers *handler.CustomerHandler
	Movies    *handler.MovieHandler
	Genres    *handler.GenreHandler
}

// RegisterStaff registers the back-office endpoints under /v1.
// All routes require a valid JWT with the ADMIN or CLERK role; destructive
// operations additionally require ADMIN.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CLERK"),
	)
	admin := middleware.RequireRole("ADMIN")

	// ---- Returns ----
	g.POST("/returns", h.Returns.ProcessReturn)

	// ---- Rentals ----
	g.POST("/rentals", h.Rentals.Checkout)
	g.GET("/rentals/:id", h.Rentals.GetRental)

	// ---- Customers ----
	g.POST("/customers", h.Customers.CreateCustomer)
	g.GET("/customers", h.Customers.ListCustomers)
	g.GET("/customers/:id", h.Customers.GetCustomer)
	g.GET("/customers/:id/rentals", h.Rentals.ListByCustomer)
	g.PUT("/customers/:id", h.Customers.UpdateCustomer)
	g.PATCH("/customers/:id", h.Customers.UpdateCustomer)
	g.DELETE("/customers/:id", h.Customers.DeleteCustomer, admin)

	// ---- Movies ----
	// NOTE: Listing and reading movies is handled by the public browse API
	// at GET /v1/movies; only mutations live here.
	g.POST("/movies", h.Movies.CreateMovie)
	g.PUT("/movies/:id", h.Movies.UpdateMovie)
	g.PATCH("/movies/:id", h.Movies.UpdateMovie)
	g.DELETE("/movies/:id", h.Movies.DeleteMovie, admin)

	// ---- Genres ----
	g.POST("/genres", h.Genres.CreateGenre)
	g.PUT("/genres/:id", h.Genres.UpdateGenre)
	g.PATCH("/genres/:id", h.Genres.UpdateGenre)
	g.DELETE("/genres/:id", h.Genres.DeleteGenre, admin)
}
