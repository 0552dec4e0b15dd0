package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-occupancy/internal/config"
	"github.com/medicore/hospital-occupancy/internal/database"
	"github.com/medicore/hospital-occupancy/internal/handler"
	"github.com/medicore/hospital-occupancy/internal/middleware"
	"github.com/medicore/hospital-occupancy/internal/occupancy"
	"github.com/medicore/hospital-occupancy/internal/queue"
	"github.com/medicore/hospital-occupancy/internal/repository"
	"github.com/medicore/hospital-occupancy/internal/router"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; without it caching and rate limiting are disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limit disabled")
	}

	rooms := repository.NewRoomRepo(db)
	beds := repository.NewBedRepo(db)
	patients := repository.NewPatientRepo(db)
	staff := repository.NewStaffRepo(db)
	tokens := repository.NewTokenRepo(db)

	svc := occupancy.New(rooms, beds, patients)

	authHandler := handler.NewAuthHandler(cfg, staff, tokens)
	occHandler := handler.NewOccupancyHandler(svc)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterOccupancy(e, occHandler, cfg.JWTSecret, cache)

	// Consume bed events in the background for the admissions audit trail.
	go func() {
		if err := queue.StartBedEventConsumer(); err != nil {
			log.Printf("bed event consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
