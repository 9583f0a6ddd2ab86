package works_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"art-inventory/database"
	worksapi "art-inventory/internal/api/works"
	"art-inventory/internal/domain/media"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/testutil"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.DB = testutil.DB(t)

	r := gin.New()
	r.GET("/artworks", worksapi.ListArtworks)
	r.GET("/artworks/:id", worksapi.GetArtworkByID)
	r.POST("/artworks", worksapi.CreateArtwork)
	r.PUT("/artworks/:id", worksapi.UpdateArtwork)
	r.DELETE("/artworks/:id", worksapi.DeleteArtwork)
	r.PATCH("/artworks/bulk", worksapi.BulkUpdateArtworks)
	r.GET("/artworks/:id/locations", worksapi.GetArtworkLocations)
	r.POST("/series", worksapi.CreateSeries)
	r.DELETE("/series/:id", worksapi.DeleteSeries)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedImage(t *testing.T, name string) media.GalleryImage {
	t.Helper()
	img := media.GalleryImage{
		StoredName:   name,
		OriginalName: name,
		MimeType:     "image/jpeg",
		FileSize:     10,
		FilePath:     name,
		UploadedAt:   time.Now(),
	}
	require.NoError(t, database.DB.Create(&img).Error)
	return img
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) uint {
	t.Helper()
	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestCreateArtworkWithImagesAndLocation(t *testing.T) {
	r := setup(t)
	img1 := seedImage(t, "a.jpg")
	img2 := seedImage(t, "b.jpg")

	w := doJSON(t, r, http.MethodPost, "/artworks", gin.H{
		"inventory_code":   "INV-1",
		"title":            "Dawn",
		"current_location": "studio",
		"images": []gin.H{
			{"image_id": img1.ID},
			{"image_id": img2.ID},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := createdID(t, w)

	var links []works.ArtworkImage
	require.NoError(t, database.DB.Where("artwork_id = ?", id).Order("display_order").Find(&links).Error)
	require.Len(t, links, 2)
	require.True(t, links[0].IsPrimary)
	require.False(t, links[1].IsPrimary)

	var history []sales.LocationHistory
	require.NoError(t, database.DB.Where("artwork_id = ?", id).Find(&history).Error)
	require.Len(t, history, 1)
	require.Equal(t, "studio", history[0].Location)
}

func TestUpdateArtworkReplacesImageSet(t *testing.T) {
	r := setup(t)
	img1 := seedImage(t, "a.jpg")
	img2 := seedImage(t, "b.jpg")

	w := doJSON(t, r, http.MethodPost, "/artworks", gin.H{
		"inventory_code": "INV-1",
		"title":          "Dawn",
		"images":         []gin.H{{"image_id": img1.ID}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := createdID(t, w)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/artworks/%d", id), gin.H{
		"images": []gin.H{{"image_id": img2.ID, "is_primary": true}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var links []works.ArtworkImage
	require.NoError(t, database.DB.Where("artwork_id = ?", id).Find(&links).Error)
	require.Len(t, links, 1)
	require.Equal(t, img2.ID, links[0].ImageID)
}

func TestCreateArtworkRejectsMissingImage(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodPost, "/artworks", gin.H{
		"inventory_code": "INV-1",
		"title":          "Dawn",
		"images":         []gin.H{{"image_id": 999}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// the transaction rolled the work back too
	var n int64
	require.NoError(t, database.DB.Model(&works.Artwork{}).Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestLocationChangesAccumulateHistory(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodPost, "/artworks", gin.H{
		"inventory_code":   "INV-1",
		"title":            "Dawn",
		"current_location": "studio",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := createdID(t, w)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/artworks/%d", id), gin.H{
		"current_location": "gallery north",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// same location again must not add a row
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/artworks/%d", id), gin.H{
		"current_location": "gallery north",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/artworks/%d/locations", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history []sales.LocationHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
}

func TestBulkUpdateAdjustsPrices(t *testing.T) {
	r := setup(t)

	ids := make([]uint, 0, 3)
	for i := 1; i <= 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/artworks", gin.H{
			"inventory_code": fmt.Sprintf("INV-%d", i),
			"title":          fmt.Sprintf("Work %d", i),
			"price":          100.0,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, createdID(t, w))
	}

	w := doJSON(t, r, http.MethodPatch, "/artworks/bulk", gin.H{
		"ids":              ids[:2],
		"set":              gin.H{"status": "on_hold"},
		"price_adjustment": gin.H{"mode": "percent", "amount": 10},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got []works.Artwork
	require.NoError(t, database.DB.Order("id").Find(&got).Error)
	require.Equal(t, works.StatusOnHold, got[0].Status)
	require.InDelta(t, 110, got[0].Price, 0.001)
	require.InDelta(t, 110, got[1].Price, 0.001)

	// the third work was not in the batch
	require.Equal(t, works.StatusAvailable, got[2].Status)
	require.InDelta(t, 100, got[2].Price, 0.001)
}

func TestDeleteSeriesDetachesWorks(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodPost, "/series", gin.H{"name": "Blue Period"})
	require.Equal(t, http.StatusCreated, w.Code)
	seriesID := createdID(t, w)

	w = doJSON(t, r, http.MethodPost, "/artworks", gin.H{
		"inventory_code": "INV-1",
		"title":          "Dawn",
		"series_id":      seriesID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	artworkID := createdID(t, w)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/series/%d", seriesID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var a works.Artwork
	require.NoError(t, database.DB.First(&a, artworkID).Error)
	require.Nil(t, a.SeriesID)
}

func TestCreateSeriesRejectsDuplicateName(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodPost, "/series", gin.H{"name": "Blue Period"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/series", gin.H{"name": "Blue Period"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateArtworkRejectsDuplicateInventoryCode(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodPost, "/artworks", gin.H{
		"inventory_code": "INV-1",
		"title":          "Dawn",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/artworks", gin.H{
		"inventory_code": "INV-1",
		"title":          "Dusk",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}
