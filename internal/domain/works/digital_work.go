package works

import "time"

type DigitalWork struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InventoryCode string `gorm:"uniqueIndex;not null" json:"inventory_code"`
	Title         string `gorm:"not null" json:"title"`
	CreationDate  string `json:"creation_date,omitempty"`
	Medium        string `json:"medium,omitempty"`
	Dimensions    string `json:"dimensions,omitempty"`

	SeriesID *uint   `gorm:"index" json:"series_id,omitempty"`
	Series   *Series `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"series,omitempty"`

	Status  string  `gorm:"not null;default:'available'" json:"status"`
	Price   float64 `json:"price"`
	Notes   string  `json:"notes,omitempty"`
	Visible bool    `gorm:"not null;default:true" json:"visible"`

	FileFormat  string `json:"file_format,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
	LicenseType string `json:"license_type,omitempty"`

	VideoURL string `json:"video_url,omitempty"`
	EmbedURL string `json:"embed_url,omitempty"`
	Platform string `json:"platform,omitempty"`

	NFTTokenID         string `gorm:"column:nft_token_id" json:"nft_token_id,omitempty"`
	NFTContractAddress string `gorm:"column:nft_contract_address" json:"nft_contract_address,omitempty"`
	NFTBlockchain      string `gorm:"column:nft_blockchain" json:"nft_blockchain,omitempty"`

	Images []DigitalWorkImage `gorm:"constraint:OnDelete:CASCADE;" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DigitalWork) TableName() string { return "digital_works" }
