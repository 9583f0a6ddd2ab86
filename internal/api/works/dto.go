package works

// ImageLinkInput is one entry of a work's image list. The list sent on
// create/update fully replaces the stored set.
type ImageLinkInput struct {
	ImageID      uint `json:"image_id" binding:"required"`
	IsPrimary    bool `json:"is_primary"`
	DisplayOrder int  `json:"display_order"`
}

type CreateArtworkRequest struct {
	InventoryCode string `json:"inventory_code" binding:"required"`
	Title         string `json:"title" binding:"required"`
	CreationDate  string `json:"creation_date"`
	Medium        string `json:"medium"`
	Dimensions    string `json:"dimensions"`

	SeriesID        *uint   `json:"series_id"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	CurrentLocation string  `json:"current_location"`
	Notes           string  `json:"notes"`
	Visible         *bool   `json:"visible"`

	Images []ImageLinkInput `json:"images"`
	TagIDs []uint           `json:"tag_ids"`
}

type UpdateArtworkRequest struct {
	InventoryCode *string `json:"inventory_code"`
	Title         *string `json:"title"`
	CreationDate  *string `json:"creation_date"`
	Medium        *string `json:"medium"`
	Dimensions    *string `json:"dimensions"`

	SeriesID        *uint    `json:"series_id"`
	DetachSeries    bool     `json:"detach_series"`
	Status          *string  `json:"status"`
	Price           *float64 `json:"price"`
	CurrentLocation *string  `json:"current_location"`
	Notes           *string  `json:"notes"`
	Visible         *bool    `json:"visible"`

	Images *[]ImageLinkInput `json:"images"`
	TagIDs *[]uint           `json:"tag_ids"`
}

type CreateDigitalWorkRequest struct {
	InventoryCode string `json:"inventory_code" binding:"required"`
	Title         string `json:"title" binding:"required"`
	CreationDate  string `json:"creation_date"`
	Medium        string `json:"medium"`
	Dimensions    string `json:"dimensions"`

	SeriesID *uint   `json:"series_id"`
	Status   string  `json:"status"`
	Price    float64 `json:"price"`
	Notes    string  `json:"notes"`
	Visible  *bool   `json:"visible"`

	FileFormat  string `json:"file_format"`
	FileSize    int64  `json:"file_size"`
	LicenseType string `json:"license_type"`
	VideoURL    string `json:"video_url"`
	EmbedURL    string `json:"embed_url"`
	Platform    string `json:"platform"`

	NFTTokenID         string `json:"nft_token_id"`
	NFTContractAddress string `json:"nft_contract_address"`
	NFTBlockchain      string `json:"nft_blockchain"`

	Images []ImageLinkInput `json:"images"`
	TagIDs []uint           `json:"tag_ids"`
}

type UpdateDigitalWorkRequest struct {
	InventoryCode *string `json:"inventory_code"`
	Title         *string `json:"title"`
	CreationDate  *string `json:"creation_date"`
	Medium        *string `json:"medium"`
	Dimensions    *string `json:"dimensions"`

	SeriesID     *uint    `json:"series_id"`
	DetachSeries bool     `json:"detach_series"`
	Status       *string  `json:"status"`
	Price        *float64 `json:"price"`
	Notes        *string  `json:"notes"`
	Visible      *bool    `json:"visible"`

	FileFormat  *string `json:"file_format"`
	FileSize    *int64  `json:"file_size"`
	LicenseType *string `json:"license_type"`
	VideoURL    *string `json:"video_url"`
	EmbedURL    *string `json:"embed_url"`
	Platform    *string `json:"platform"`

	NFTTokenID         *string `json:"nft_token_id"`
	NFTContractAddress *string `json:"nft_contract_address"`
	NFTBlockchain      *string `json:"nft_blockchain"`

	Images *[]ImageLinkInput `json:"images"`
	TagIDs *[]uint           `json:"tag_ids"`
}

type CreateSeriesRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type UpdateSeriesRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// BulkUpdateArtworksRequest patches a fixed set of fields across many works
// at once. PriceAdjustment applies after Set.
type BulkUpdateArtworksRequest struct {
	IDs []uint `json:"ids" binding:"required"`

	Set struct {
		Status          *string `json:"status"`
		SeriesID        *uint   `json:"series_id"`
		DetachSeries    bool    `json:"detach_series"`
		Visible         *bool   `json:"visible"`
		CurrentLocation *string `json:"current_location"`
		Notes           *string `json:"notes"`
	} `json:"set"`

	PriceAdjustment *struct {
		Mode   string  `json:"mode" binding:"oneof=percent fixed"`
		Amount float64 `json:"amount"`
	} `json:"price_adjustment"`
}
