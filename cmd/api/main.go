package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/barber-payments/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-payments/internal/db"
	"github.com/BruksfildServices01/barber-payments/internal/middleware"
	"github.com/BruksfildServices01/barber-payments/internal/provider"
	"github.com/BruksfildServices01/barber-payments/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// gateway nil = provedor não configurado; os handlers respondem 503 em
	// vez de quebrar no boot
	var gateway provider.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = provider.NewStripeGateway(cfg.StripeSecretKey)
	} else {
		log.Println("STRIPE_SECRET_KEY not set, payment provider disabled")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, gateway)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
