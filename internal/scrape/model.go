package scrape

import (
	"fmt"
	"strings"
)

// Snapshot is the availability of every category on the page at the time it
// was extracted.
type Snapshot struct {
	SourceURL  string     `json:"source_url"`
	Categories []Category `json:"categories"`
}

// FloorPlans flattens all categories into one slice in page order.
func (s Snapshot) FloorPlans() []FloorPlan {
	var out []FloorPlan
	for _, c := range s.Categories {
		out = append(out, c.FloorPlans...)
	}
	return out
}

// Category groups the floor plans listed under one accordion heading.
type Category struct {
	Name       string      `json:"name"`
	Bedrooms   int         `json:"bedrooms"`
	FloorPlans []FloorPlan `json:"floor_plans"`
}

func (c Category) String() string {
	lines := make([]string, 0, len(c.FloorPlans)+1)
	lines = append(lines, c.Name+":")
	for _, f := range c.FloorPlans {
		lines = append(lines, "\t• "+f.String())
	}
	return strings.Join(lines, "\n")
}

// FloorPlan is one unit type row.
type FloorPlan struct {
	LayoutImageURL string `json:"layout_image_url"`
	PlanLabel      string `json:"plan"`
	BedBath        string `json:"bed_bath"`
	SquareFeet     int    `json:"square_feet"`
	// Rent is display text, usually a range such as "$1,200 - $1,450".
	Rent         string `json:"rent"`
	Availability int    `json:"availability"`
}

func (f FloorPlan) String() string {
	return fmt.Sprintf("%s (%s): %d sq ft, %s rent, %d available", f.PlanLabel, f.BedBath, f.SquareFeet, f.Rent, f.Availability)
}
