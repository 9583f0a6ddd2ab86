// Package testutil provides an in-memory database and a fake object store
// for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"art-inventory/internal/domain/media"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/tags"
	"art-inventory/internal/domain/works"
)

var dbSeq atomic.Int64

// DB opens a fresh in-memory sqlite database migrated with every entity
// model. Each call gets its own database, so tests stay independent.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("unwrap sql.DB: %v", err)
	}
	// a second connection to an in-memory DB would see an empty schema
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&media.GalleryImage{},
		&works.Series{},
		&works.Artwork{},
		&works.DigitalWork{},
		&works.ArtworkImage{},
		&works.DigitalWorkImage{},
		&shows.Exhibition{},
		&shows.ArtworkExhibition{},
		&shows.DigitalWorkExhibition{},
		&tags.Tag{},
		&tags.ArtworkTag{},
		&tags.DigitalWorkTag{},
		&sales.Sale{},
		&sales.LocationHistory{},
	); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}

	return db
}
