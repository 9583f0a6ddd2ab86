package media

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"art-inventory/database"
	"art-inventory/internal/domain/media"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/store"
)

const maxBatchFiles = 50

// Handler serves image uploads and downloads. Bytes go to the object store,
// metadata to the gallery_images table.
type Handler struct {
	objects store.ObjectStore
}

func NewHandler(objects store.ObjectStore) *Handler {
	return &Handler{objects: objects}
}

func detectMime(header string, filename string) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".avif":
		return "image/avif"
	case ".svg":
		return "image/svg+xml"
	}
	return ""
}

func (h *Handler) storeOne(c *gin.Context, originalName, mimeHint string, r io.Reader, size int64) (*media.GalleryImage, error) {
	mime := detectMime(mimeHint, originalName)
	if !strings.HasPrefix(mime, "image/") {
		return nil, store.ErrUnsupportedMedia
	}
	if size > store.MaxObjectSize {
		return nil, store.ErrPayloadTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, store.MaxObjectSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > store.MaxObjectSize {
		return nil, store.ErrPayloadTooLarge
	}

	info, err := h.objects.Upload(c.Request.Context(), data, originalName, mime)
	if err != nil {
		return nil, err
	}

	img := media.GalleryImage{
		StoredName:   info.Key,
		OriginalName: originalName,
		MimeType:     mime,
		FileSize:     int64(len(data)),
		FilePath:     info.Key,
		UploadedAt:   time.Now(),
	}
	if err := database.DB.Create(&img).Error; err != nil {
		// the metadata row is the source of truth; drop the orphan object
		h.objects.Delete(c.Request.Context(), info.Key)
		return nil, err
	}
	return &img, nil
}

func uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 50 MiB limit"})
	case errors.Is(err, store.ErrUnsupportedMedia):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only image uploads are accepted"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image", "details": err.Error()})
	}
}

// ------------------------------
// POST /images (multipart, field "file")
// ------------------------------
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()

	img, err := h.storeOne(c, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
	if err != nil {
		uploadError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// ------------------------------
// POST /images/batch (multipart, field "files")
// ------------------------------
// Per-file failures are reported alongside the stored rows so one bad file
// never sinks the batch.
func (h *Handler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files field required"})
		return
	}
	if len(files) > maxBatchFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many files in one batch"})
		return
	}

	stored := make([]*media.GalleryImage, 0, len(files))
	failed := make([]gin.H, 0)
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			failed = append(failed, gin.H{"file": fh.Filename, "error": err.Error()})
			continue
		}
		img, err := h.storeOne(c, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
		f.Close()
		if err != nil {
			failed = append(failed, gin.H{"file": fh.Filename, "error": err.Error()})
			continue
		}
		stored = append(stored, img)
	}

	c.JSON(http.StatusOK, gin.H{"stored": stored, "failed": failed})
}

// ------------------------------
// GET /images
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	var items []media.GalleryImage
	if err := database.DB.Order("uploaded_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load images"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ------------------------------
// GET /images/:id/url
// ------------------------------
func (h *Handler) DownloadURL(c *gin.Context) {
	id := c.Param("id")

	var img media.GalleryImage
	if err := database.DB.First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load image"})
		return
	}

	url, err := h.objects.URL(c.Request.Context(), img.FilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": int(store.DownloadURLExpiry.Seconds())})
}

// ------------------------------
// DELETE /images/:id
// ------------------------------
// The metadata row and its work links go first; the stored object is removed
// best-effort afterwards.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var img media.GalleryImage
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&img, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", img.ID).Delete(&works.ArtworkImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", img.ID).Delete(&works.DigitalWorkImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&img).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image", "details": err.Error()})
		return
	}

	h.objects.Delete(c.Request.Context(), img.FilePath)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
