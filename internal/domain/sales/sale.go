package sales

import (
	"strconv"
	"strings"
	"time"
)

// Sale records the sale of exactly one work: ArtworkID or DigitalWorkID is
// set, never both and never neither. Handlers enforce this before insert.
type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ArtworkID     *uint `gorm:"index" json:"artwork_id,omitempty"`
	DigitalWorkID *uint `gorm:"index" json:"digital_work_id,omitempty"`

	SaleDate   time.Time `json:"sale_date"`
	SalePrice  float64   `json:"sale_price"`
	BuyerName  string    `json:"buyer_name,omitempty"`
	BuyerEmail string    `json:"buyer_email,omitempty"`
	Platform   string    `json:"platform,omitempty"`
	Notes      string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Sale) TableName() string { return "sales" }

// ParsePrice extracts a numeric price from free-text currency input such as
// "€1,200.50", "$ 300" or "1200". Commas are treated as thousands separators.
func ParsePrice(input string) (float64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(input) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(cleaned, 64)
}
