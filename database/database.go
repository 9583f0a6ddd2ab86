package database

import (
	"art-inventory/config"
	"art-inventory/internal/domain/media"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/tags"
	"art-inventory/internal/domain/works"
	"art-inventory/pkg/log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatalf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// catalog
		&works.Series{},
		&tags.Tag{},
		&media.GalleryImage{},
		&works.Artwork{},
		&works.DigitalWork{},
		&shows.Exhibition{},
		&sales.Sale{},

		// link rows
		&works.ArtworkImage{},
		&works.DigitalWorkImage{},
		&tags.ArtworkTag{},
		&tags.DigitalWorkTag{},
		&shows.ArtworkExhibition{},
		&shows.DigitalWorkExhibition{},
		&sales.LocationHistory{},
	); err != nil {
		log.Fatalf("auto-migrate error: %v", err)
	}

	log.Info("connected and migrated successfully")
}
