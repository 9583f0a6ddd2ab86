package media

import "time"

// GalleryImage is the metadata row for one uploaded binary object. The bytes
// themselves live in the object store under FilePath.
type GalleryImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StoredName   string    `gorm:"not null" json:"filename"`
	OriginalName string    `gorm:"not null" json:"original_name"`
	MimeType     string    `gorm:"not null" json:"mime_type"`
	FileSize     int64     `gorm:"not null" json:"file_size"`
	FilePath     string    `gorm:"not null;uniqueIndex" json:"file_path"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (GalleryImage) TableName() string { return "gallery_images" }
