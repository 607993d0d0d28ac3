// The application service owns the rental-application lifecycle:
// solicitudes, their validation gate and the lease records opened when
// a solicitud is accepted.  It calls the user, property and document
// services over HTTP.
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
	cfg := config.Load("application")

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := client.NewUserClient(cfg.UserServiceURL, cfg.ClientTimeout)
	properties := client.NewPropertyClient(cfg.PropertyServiceURL, cfg.ClientTimeout)
	documents := client.NewDocumentClient(cfg.DocumentServiceURL, cfg.ClientTimeout)

	solicitudRepo := repository.NewSolicitudRepo(db)
	registroRepo := repository.NewRegistroRepo(db)

	registros := service.NewRegistroService(registroRepo, solicitudRepo)
	solicitudes := service.NewSolicitudService(
		solicitudRepo, registros, users, properties, documents, cfg.MaxSolicitudesActivas,
	)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Identity())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterCommon(e)
	router.RegisterSolicitudes(e,
		handler.NewSolicitudHandler(solicitudes),
		handler.NewRegistroHandler(registros),
	)

	addr := ":" + cfg.Port
	log.Printf("application service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
