// The property service owns rental listings and answers the
// GET /api/propiedades/:id contract the application and review
// services call.
package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/rentify/rental-services/internal/client"
	"github.com/rentify/rental-services/internal/config"
	"github.com/rentify/rental-services/internal/database"
	"github.com/rentify/rental-services/internal/handler"
	"github.com/rentify/rental-services/internal/middleware"
	"github.com/rentify/rental-services/internal/repository"
	"github.com/rentify/rental-services/internal/router"
	"github.com/rentify/rental-services/internal/service"
)

func main() {
	cfg := config.Load("property")

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := client.NewUserClient(cfg.UserServiceURL, cfg.ClientTimeout)
	propiedadRepo := repository.NewPropiedadRepo(db)
	propiedades := service.NewPropiedadService(propiedadRepo, users)
	fotos := service.NewFotoService(repository.NewFotoRepo(db), propiedadRepo)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Identity())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterCommon(e)
	router.RegisterPropiedades(e, handler.NewPropiedadHandler(propiedades), handler.NewFotoHandler(fotos))

	addr := ":" + cfg.Port
	log.Printf("property service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
