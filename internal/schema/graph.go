// Package schema declares the entity types of the catalog and the foreign-key
// dependencies between them. Both the insertion order used by restore and
// migration and the deletion order used by clear are derived from this single
// declaration, so the two can never drift apart.
package schema

import "fmt"

// Entity type names. These double as table names and as the keys of the
// backup snapshot's data section.
const (
	Series                 = "series"
	Tags                   = "tags"
	GalleryImages          = "gallery_images"
	Artworks               = "artworks"
	DigitalWorks           = "digital_works"
	Exhibitions            = "exhibitions"
	Sales                  = "sales"
	ArtworkImages          = "artwork_images"
	DigitalWorkImages      = "digital_work_images"
	ArtworkTags            = "artwork_tags"
	DigitalWorkTags        = "digital_work_tags"
	ArtworkExhibitions     = "artwork_exhibitions"
	DigitalWorkExhibitions = "digital_work_exhibitions"
	LocationHistory        = "location_history"
)

type node struct {
	name      string
	dependsOn []string
}

// dependencies lists, per entity type, the types it references by foreign
// key. Declaration order breaks ties so the computed order is deterministic.
var dependencies = []node{
	{Series, nil},
	{Tags, nil},
	{GalleryImages, nil},
	{Artworks, []string{Series}},
	{DigitalWorks, []string{Series}},
	{Exhibitions, nil},
	{Sales, []string{Artworks, DigitalWorks}},
	{ArtworkImages, []string{Artworks, GalleryImages}},
	{DigitalWorkImages, []string{DigitalWorks, GalleryImages}},
	{ArtworkTags, []string{Artworks, Tags}},
	{DigitalWorkTags, []string{DigitalWorks, Tags}},
	{ArtworkExhibitions, []string{Artworks, Exhibitions}},
	{DigitalWorkExhibitions, []string{DigitalWorks, Exhibitions}},
	{LocationHistory, []string{Artworks}},
}

var insertionOrder = mustTopoSort(dependencies)

// InsertionOrder returns every entity type ordered so that each type appears
// after all types it references by foreign key.
func InsertionOrder() []string {
	out := make([]string, len(insertionOrder))
	copy(out, insertionOrder)
	return out
}

// DeletionOrder is the exact reverse of InsertionOrder, safe for bulk deletes.
func DeletionOrder() []string {
	out := make([]string, len(insertionOrder))
	for i, name := range insertionOrder {
		out[len(out)-1-i] = name
	}
	return out
}

// Types returns all entity type names in declaration order.
func Types() []string {
	out := make([]string, 0, len(dependencies))
	for _, n := range dependencies {
		out = append(out, n.name)
	}
	return out
}

// mustTopoSort runs Kahn's algorithm, preferring declaration order among
// ready nodes. It panics on unknown references or cycles; both are programmer
// errors in the table above and should fail at startup, not at import time of
// someone's backup.
func mustTopoSort(nodes []node) []string {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if known[n.name] {
			panic(fmt.Sprintf("schema: entity type %q declared twice", n.name))
		}
		known[n.name] = true
	}

	indegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		for _, dep := range n.dependsOn {
			if !known[dep] {
				panic(fmt.Sprintf("schema: %q depends on undeclared type %q", n.name, dep))
			}
			indegree[n.name]++
		}
	}

	placed := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))
	for len(order) < len(nodes) {
		progressed := false
		for _, n := range nodes {
			if placed[n.name] || indegree[n.name] > 0 {
				continue
			}
			placed[n.name] = true
			order = append(order, n.name)
			for _, m := range nodes {
				for _, dep := range m.dependsOn {
					if dep == n.name {
						indegree[m.name]--
					}
				}
			}
			progressed = true
		}
		if !progressed {
			panic("schema: dependency cycle between entity types")
		}
	}
	return order
}
