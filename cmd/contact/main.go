// The contact service stores contact-form messages and their replies.
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
	cfg := config.Load("contact")

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := client.NewUserClient(cfg.UserServiceURL, cfg.ClientTimeout)
	mensajes := service.NewMensajeService(repository.NewMensajeRepo(db), users)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Identity())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterCommon(e)
	router.RegisterContacto(e, handler.NewMensajeHandler(mensajes))

	addr := ":" + cfg.Port
	log.Printf("contact service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
