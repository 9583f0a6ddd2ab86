package works

// ArtworkImage links an artwork to one of its gallery images. The whole link
// set for a work is replaced (delete then reinsert) on every update, so rows
// never mutate in place.
type ArtworkImage struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ArtworkID    uint `gorm:"not null;index" json:"artwork_id"`
	ImageID      uint `gorm:"not null;index" json:"image_id"`
	IsPrimary    bool `gorm:"not null;default:false" json:"is_primary"`
	DisplayOrder int  `gorm:"not null;default:0" json:"display_order"`
}

func (ArtworkImage) TableName() string { return "artwork_images" }

type DigitalWorkImage struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	DigitalWorkID uint `gorm:"not null;index" json:"digital_work_id"`
	ImageID       uint `gorm:"not null;index" json:"image_id"`
	IsPrimary     bool `gorm:"not null;default:false" json:"is_primary"`
	DisplayOrder  int  `gorm:"not null;default:0" json:"display_order"`
}

func (DigitalWorkImage) TableName() string { return "digital_work_images" }
