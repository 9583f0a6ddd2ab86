package works

import "time"

// Sale status values shared by physical and digital works.
const (
	StatusAvailable  = "available"
	StatusSold       = "sold"
	StatusOnHold     = "on_hold"
	StatusNotForSale = "not_for_sale"
)

// ValidStatus reports whether s is one of the recognized sale statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusSold, StatusOnHold, StatusNotForSale:
		return true
	}
	return false
}

type Artwork struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InventoryCode string `gorm:"uniqueIndex;not null" json:"inventory_code"`
	Title         string `gorm:"not null" json:"title"`
	CreationDate  string `json:"creation_date,omitempty"`
	Medium        string `json:"medium,omitempty"`
	Dimensions    string `json:"dimensions,omitempty"`

	SeriesID *uint   `gorm:"index" json:"series_id,omitempty"`
	Series   *Series `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"series,omitempty"`

	Status          string  `gorm:"not null;default:'available'" json:"status"`
	Price           float64 `json:"price"`
	CurrentLocation string  `json:"current_location,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Visible         bool    `gorm:"not null;default:true" json:"visible"`

	Images []ArtworkImage `gorm:"constraint:OnDelete:CASCADE;" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Artwork) TableName() string { return "artworks" }
