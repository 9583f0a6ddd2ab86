package store

import (
	"fmt"

	"art-inventory/internal/domain/media"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/tags"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/schema"
)

// entityType binds a schema type name to its model. newSlice and newRecord
// give the adapter typed targets to decode into, so every imported row is
// validated against the compiled-in column set instead of whatever keys the
// input happens to carry.
type entityType struct {
	table     string
	newRecord func() interface{}
	newSlice  func() interface{}
}

var registry = map[string]entityType{
	schema.Series: {
		table:     schema.Series,
		newRecord: func() interface{} { return new(works.Series) },
		newSlice:  func() interface{} { return new([]works.Series) },
	},
	schema.Tags: {
		table:     schema.Tags,
		newRecord: func() interface{} { return new(tags.Tag) },
		newSlice:  func() interface{} { return new([]tags.Tag) },
	},
	schema.GalleryImages: {
		table:     schema.GalleryImages,
		newRecord: func() interface{} { return new(media.GalleryImage) },
		newSlice:  func() interface{} { return new([]media.GalleryImage) },
	},
	schema.Artworks: {
		table:     schema.Artworks,
		newRecord: func() interface{} { return new(works.Artwork) },
		newSlice:  func() interface{} { return new([]works.Artwork) },
	},
	schema.DigitalWorks: {
		table:     schema.DigitalWorks,
		newRecord: func() interface{} { return new(works.DigitalWork) },
		newSlice:  func() interface{} { return new([]works.DigitalWork) },
	},
	schema.Exhibitions: {
		table:     schema.Exhibitions,
		newRecord: func() interface{} { return new(shows.Exhibition) },
		newSlice:  func() interface{} { return new([]shows.Exhibition) },
	},
	schema.Sales: {
		table:     schema.Sales,
		newRecord: func() interface{} { return new(sales.Sale) },
		newSlice:  func() interface{} { return new([]sales.Sale) },
	},
	schema.ArtworkImages: {
		table:     schema.ArtworkImages,
		newRecord: func() interface{} { return new(works.ArtworkImage) },
		newSlice:  func() interface{} { return new([]works.ArtworkImage) },
	},
	schema.DigitalWorkImages: {
		table:     schema.DigitalWorkImages,
		newRecord: func() interface{} { return new(works.DigitalWorkImage) },
		newSlice:  func() interface{} { return new([]works.DigitalWorkImage) },
	},
	schema.ArtworkTags: {
		table:     schema.ArtworkTags,
		newRecord: func() interface{} { return new(tags.ArtworkTag) },
		newSlice:  func() interface{} { return new([]tags.ArtworkTag) },
	},
	schema.DigitalWorkTags: {
		table:     schema.DigitalWorkTags,
		newRecord: func() interface{} { return new(tags.DigitalWorkTag) },
		newSlice:  func() interface{} { return new([]tags.DigitalWorkTag) },
	},
	schema.ArtworkExhibitions: {
		table:     schema.ArtworkExhibitions,
		newRecord: func() interface{} { return new(shows.ArtworkExhibition) },
		newSlice:  func() interface{} { return new([]shows.ArtworkExhibition) },
	},
	schema.DigitalWorkExhibitions: {
		table:     schema.DigitalWorkExhibitions,
		newRecord: func() interface{} { return new(shows.DigitalWorkExhibition) },
		newSlice:  func() interface{} { return new([]shows.DigitalWorkExhibition) },
	},
	schema.LocationHistory: {
		table:     schema.LocationHistory,
		newRecord: func() interface{} { return new(sales.LocationHistory) },
		newSlice:  func() interface{} { return new([]sales.LocationHistory) },
	},
}

func init() {
	// every declared schema type must have a model bound to it
	for _, name := range schema.Types() {
		if _, ok := registry[name]; !ok {
			panic(fmt.Sprintf("store: no model registered for entity type %q", name))
		}
	}
}

func typeFor(name string) (entityType, error) {
	et, ok := registry[name]
	if !ok {
		return entityType{}, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	return et, nil
}
