package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/video-rental-store/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/video-rental-store/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probes hit this endpoint to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login
	// and the two refresh variants.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; the handler accepts either
	// a refresh_token body or a bearer header and revokes accordingly.
	g.POST("/logout", a.Logout)

	// Protected group: every handler registered here runs the JWTAuth
	// middleware first.  Both staff roles may read their own identity.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CLERK"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalogue browse endpoints.
// The optional extra middlewares (response cache, rate limiter) are applied
// to every route in the group.
func RegisterPublic(e *echo.Echo, g *handler.GenreHandler, m *handler.MovieHandler, mw ...echo.MiddlewareFunc) {
	pub := e.Group("/v1", mw...)
	pub.GET("/genres", g.ListGenres)
	pub.GET("/genres/:id", g.GetGenre)
	pub.GET("/movies", m.ListMovies)
	pub.GET("/movies/:id", m.GetMovie)
}
