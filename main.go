package main

import (
	"context"
	"time"

	"art-inventory/config"
	"art-inventory/database"
	routes "art-inventory/internal/app/http"
	"art-inventory/internal/backup"
	"art-inventory/internal/migrate"
	"art-inventory/internal/store"
	"art-inventory/pkg/log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	log.Init(config.LOG_LEVEL, config.LOG_FORMAT)
	defer log.Sync()

	database.InitDB()

	objects, err := store.NewMinioStore(context.Background(), store.MinioConfig{
		Endpoint:  config.MINIO_ENDPOINT,
		AccessKey: config.MINIO_ACCESS_KEY,
		SecretKey: config.MINIO_SECRET_KEY,
		Bucket:    config.MINIO_BUCKET,
		UseSSL:    config.MINIO_USE_SSL,
	})
	if err != nil {
		log.Fatalf("object store init failed: %v", err)
	}

	entities := store.NewEntities(database.DB)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Entities:      entities,
		Objects:       objects,
		MigrateEngine: migrate.New(entities, objects),
		BackupEngine:  backup.New(entities),
	})

	log.Infof("listening on :%s", config.PORT)
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
