package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"photostore/internal/config"
	"photostore/internal/database"
	"photostore/internal/images"
	"photostore/internal/repository"
	"photostore/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("failed to ensure indexes:", err)
	}
	cancel()

	proc, err := images.NewProcessor(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to prepare upload directory:", err)
	}

	router := gin.Default()
	routes.RegisterRoutes(router, db, proc, cfg.UploadDir, cfg.BaseURL)

	log.Println("server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
