package shows

import "time"

type Exhibition struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Venue       string     `json:"venue,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
	Curator     string     `json:"curator,omitempty"`
	Website     string     `json:"website,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Exhibition) TableName() string { return "exhibitions" }

type ArtworkExhibition struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ArtworkID    uint `gorm:"not null;index" json:"artwork_id"`
	ExhibitionID uint `gorm:"not null;index" json:"exhibition_id"`
}

func (ArtworkExhibition) TableName() string { return "artwork_exhibitions" }

type DigitalWorkExhibition struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	DigitalWorkID uint `gorm:"not null;index" json:"digital_work_id"`
	ExhibitionID  uint `gorm:"not null;index" json:"exhibition_id"`
}

func (DigitalWorkExhibition) TableName() string { return "digital_work_exhibitions" }
