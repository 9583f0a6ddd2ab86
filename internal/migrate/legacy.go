// Package migrate moves a legacy per-browser catalog dump into the
// server-backed store. The browser store cannot be read from the server, so
// the client posts its full contents as one JSON document: records plus
// base64 image payloads.
package migrate

// LegacyAsset is one binary image payload from the legacy store. Ref is the
// legacy store's blob reference; two works pointing at the same Ref share one
// upload.
type LegacyAsset struct {
	Ref      string `json:"ref"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

type LegacyArtwork struct {
	ID            int64  `json:"id"`
	InventoryCode string `json:"inventory_code"`
	Title         string `json:"title"`
	CreationDate  string `json:"creation_date"`
	Medium        string `json:"medium"`
	Dimensions    string `json:"dimensions"`

	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	CurrentLocation string  `json:"current_location"`
	Notes           string  `json:"notes"`
	Visible         bool    `json:"visible"`

	Images []LegacyAsset `json:"images"`
}

type LegacyDigitalWork struct {
	ID            int64  `json:"id"`
	InventoryCode string `json:"inventory_code"`
	Title         string `json:"title"`
	CreationDate  string `json:"creation_date"`
	Medium        string `json:"medium"`

	Status  string  `json:"status"`
	Price   float64 `json:"price"`
	Notes   string  `json:"notes"`
	Visible bool    `json:"visible"`

	FileFormat  string `json:"file_format"`
	FileSize    int64  `json:"file_size"`
	LicenseType string `json:"license_type"`
	VideoURL    string `json:"video_url"`
	Platform    string `json:"platform"`

	Images []LegacyAsset `json:"images"`
}

// LegacyExhibition references its works by their legacy ids; the engine
// remaps them to the destination ids as it goes.
type LegacyExhibition struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	Curator     string `json:"curator"`
	Website     string `json:"website"`

	ArtworkIDs     []int64 `json:"artwork_ids"`
	DigitalWorkIDs []int64 `json:"digital_work_ids"`
}

// LegacyDump is the full export of the legacy per-browser store.
type LegacyDump struct {
	Artworks     []LegacyArtwork     `json:"artworks"`
	DigitalWorks []LegacyDigitalWork `json:"digital_works"`
	Exhibitions  []LegacyExhibition  `json:"exhibitions"`
}
