package sales

import "time"

// LocationHistory is an append-only audit trail of an artwork's location
// field. Rows are written whenever the location changes and never updated.
type LocationHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArtworkID uint      `gorm:"not null;index" json:"artwork_id"`
	Location  string    `gorm:"not null" json:"location"`
	Notes     string    `json:"notes,omitempty"`
	MovedAt   time.Time `json:"moved_at"`
}

func (LocationHistory) TableName() string { return "location_history" }
