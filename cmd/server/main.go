package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // .env loader for local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/video-rental-store/internal/config"     // Internal config loader
    "github.com/iliyamo/video-rental-store/internal/database"   // MySQL pool + migrations
    "github.com/iliyamo/video-rental-store/internal/handler"    // HTTP handlers
    "github.com/iliyamo/video-rental-store/internal/middleware" // cache + rate limit middleware
    "github.com/iliyamo/video-rental-store/internal/queue"      // RabbitMQ consumer
    "github.com/iliyamo/video-rental-store/internal/repository" // DB repositories
    "github.com/iliyamo/video-rental-store/internal/router"     // Internal router setup
)

func main() {
	// Load .env first so config.Load sees the variables.  Missing file is
	// fine in environments that inject real env vars.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.RunMigrations(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Repositories share the one pool.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	rentalRepo := repository.NewRentalRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	genreH := handler.NewGenreHandler(genreRepo)
	customerH := handler.NewCustomerHandler(customerRepo)
	movieH := handler.NewMovieHandler(movieRepo, genreRepo)
	rentalH := handler.NewRentalHandler(rentalRepo, customerRepo, movieRepo)
	returnsH := handler.NewReturnsHandler(rentalRepo, movieRepo)

	e := echo.New()

	// Redis backs both the public catalogue cache and the rate limiter.
	rdb := config.NewRedisClient()
	browseMW := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, genreH, movieH, browseMW...)
	router.RegisterStaff(e, router.StaffHandlers{
		Returns:   returnsH,
		Rentals:   rentalH,
		Customers: customerH,
		Movies:    movieH,
		Genres:    genreH,
	}, cfg.JWTSecret)

	// The consumer keeps its own connection and reconnect loop; a broker
	// outage only degrades the audit log, not the API.
	go func() {
		if err := queue.StartReturnsConsumer(); err != nil {
			log.Printf("returns consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
