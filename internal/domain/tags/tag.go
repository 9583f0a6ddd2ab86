package tags

import "time"

type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Color string `json:"color,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

type ArtworkTag struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ArtworkID uint `gorm:"not null;index" json:"artwork_id"`
	TagID     uint `gorm:"not null;index" json:"tag_id"`
}

func (ArtworkTag) TableName() string { return "artwork_tags" }

type DigitalWorkTag struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	DigitalWorkID uint `gorm:"not null;index" json:"digital_work_id"`
	TagID         uint `gorm:"not null;index" json:"tag_id"`
}

func (DigitalWorkTag) TableName() string { return "digital_work_tags" }
