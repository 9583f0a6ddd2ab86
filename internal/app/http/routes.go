package routes

import (
	backupapi "art-inventory/internal/api/backup"
	dashboardapi "art-inventory/internal/api/dashboard"
	mediaapi "art-inventory/internal/api/media"
	migrateapi "art-inventory/internal/api/migrate"
	salesapi "art-inventory/internal/api/sales"
	showsapi "art-inventory/internal/api/shows"
	tagsapi "art-inventory/internal/api/tags"
	worksapi "art-inventory/internal/api/works"
	"art-inventory/internal/app/http/middleware"
	"art-inventory/internal/backup"
	"art-inventory/internal/migrate"
	"art-inventory/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the handlers need beyond the global DB handle.
type Deps struct {
	Entities      *store.Entities
	Objects       store.ObjectStore
	MigrateEngine *migrate.Engine
	BackupEngine  *backup.Engine
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	media := mediaapi.NewHandler(deps.Objects)
	migrateH := migrateapi.NewHandler(deps.MigrateEngine)
	backupH := backupapi.NewHandler(deps.BackupEngine)
	dashboardH := dashboardapi.NewHandler(deps.Entities)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/dashboard", dashboardH.Overview)

	// catalog routes get markup stripped from their JSON input
	catalog := r.Group("/")
	catalog.Use(middleware.SanitizeInputMiddleware())

	catalog.GET("/artworks", worksapi.ListArtworks)
	catalog.GET("/artworks/:id", worksapi.GetArtworkByID)
	catalog.POST("/artworks", worksapi.CreateArtwork)
	catalog.PUT("/artworks/:id", worksapi.UpdateArtwork)
	catalog.DELETE("/artworks/:id", worksapi.DeleteArtwork)
	catalog.PATCH("/artworks/bulk", worksapi.BulkUpdateArtworks)
	catalog.GET("/artworks/:id/locations", worksapi.GetArtworkLocations)

	catalog.GET("/digital-works", worksapi.ListDigitalWorks)
	catalog.GET("/digital-works/:id", worksapi.GetDigitalWorkByID)
	catalog.POST("/digital-works", worksapi.CreateDigitalWork)
	catalog.PUT("/digital-works/:id", worksapi.UpdateDigitalWork)
	catalog.DELETE("/digital-works/:id", worksapi.DeleteDigitalWork)

	catalog.GET("/series", worksapi.ListSeries)
	catalog.GET("/series/:id", worksapi.GetSeriesByID)
	catalog.POST("/series", worksapi.CreateSeries)
	catalog.PUT("/series/:id", worksapi.UpdateSeries)
	catalog.DELETE("/series/:id", worksapi.DeleteSeries)

	catalog.GET("/exhibitions", showsapi.ListExhibitions)
	catalog.GET("/exhibitions/:id", showsapi.GetExhibitionByID)
	catalog.POST("/exhibitions", showsapi.CreateExhibition)
	catalog.PUT("/exhibitions/:id", showsapi.UpdateExhibition)
	catalog.DELETE("/exhibitions/:id", showsapi.DeleteExhibition)

	catalog.GET("/tags", tagsapi.ListTags)
	catalog.POST("/tags", tagsapi.CreateTag)
	catalog.PUT("/tags/:id", tagsapi.UpdateTag)
	catalog.DELETE("/tags/:id", tagsapi.DeleteTag)

	catalog.GET("/sales", salesapi.ListSales)
	catalog.GET("/sales/:id", salesapi.GetSaleByID)
	catalog.POST("/sales", salesapi.CreateSale)
	catalog.DELETE("/sales/:id", salesapi.DeleteSale)

	// binary uploads and bulk documents bypass the sanitizer
	r.POST("/images", media.Upload)
	r.POST("/images/batch", media.UploadBatch)
	r.GET("/images", media.List)
	r.GET("/images/:id/url", media.DownloadURL)
	r.DELETE("/images/:id", media.Delete)

	r.GET("/export", backupH.Export)
	r.POST("/import", backupH.Import)
	r.POST("/clear", backupH.Clear)

	r.POST("/migrate", migrateH.Run)
	r.GET("/migrate/status", migrateH.Status)
}
