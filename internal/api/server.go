package api

import (
	"context"

	"itsupport/internal/app/config"
	"itsupport/internal/app/dsn"
	"itsupport/internal/app/handler"
	"itsupport/internal/app/middleware"
	"itsupport/internal/app/redis"
	"itsupport/internal/app/repository"
	"itsupport/internal/app/storage"
	"itsupport/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer wires configuration, storage and handlers together and runs
// the HTTP server until it is stopped.
func StartServer() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.Info("Starting application")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, cfg.Upload.DraftTTL)
	if err != nil {
		logrus.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		logrus.Fatalf("Error connecting to minio: %v", err)
	}

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, redisClient, authHandler, cfg)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	apiHandler.RegisterAPIRoutes(router, authMiddleware)

	application := pkg.NewApp(cfg, router)
	application.RunApp()
}
