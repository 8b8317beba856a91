package main

import (
	"log"
	"os"
	"time"

	"fitness-app/config"
	"fitness-app/database"
	communityapi "fitness-app/internal/api/community"
	routes "fitness-app/internal/app/http"
	"fitness-app/internal/infra/storage"
	"fitness-app/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	logger.Init(config.APP_ENV)
	database.InitDB()

	store, err := storage.NewLocalStore(config.UPLOAD_DIR, config.UPLOAD_BASE_URL)
	if err != nil {
		log.Fatal("Failed to prepare upload directory:", err)
	}
	communityapi.Store = store

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", config.UPLOAD_DIR)

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
