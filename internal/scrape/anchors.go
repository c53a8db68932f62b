package scrape

import "strings"

// Anchors names the markup hooks the extractors navigate by. Start from
// DefaultAnchors and override individual fields when the page shifts.
type Anchors struct {
	// Page level
	ContainerID string
	GroupClass  string

	// Category level
	ToggleClass string
	TableClass  string
	RowScope    string

	// Row level
	ImageCellClass    string
	ImageSrcAttr      string
	PlanLabel         string
	BedsLabel         string
	SqFtLabel         string
	RentLabel         string
	AvailabilityLabel string
}

// DefaultAnchors returns the anchors of the securecafe floor plan listing.
func DefaultAnchors() Anchors {
	return Anchors{
		ContainerID:       "floorplanlist",
		GroupClass:        "accordion-group",
		ToggleClass:       "accordion-toggle",
		TableClass:        "table",
		RowScope:          "row",
		ImageCellClass:    "floorplan-img",
		ImageSrcAttr:      "data-src",
		PlanLabel:         "Floor Plan",
		BedsLabel:         "Beds",
		SqFtLabel:         "SQ. FT.",
		RentLabel:         "Rent",
		AvailabilityLabel: "Availability",
	}
}

func (a Anchors) containerSelector() string { return attrSelector("", "id", a.ContainerID) }
func (a Anchors) groupSelector() string     { return "div." + a.GroupClass }
func (a Anchors) toggleSelector() string    { return "a." + a.ToggleClass }
func (a Anchors) tableSelector() string     { return "table." + a.TableClass }
func (a Anchors) rowSelector() string       { return attrSelector("tr", "scope", a.RowScope) }
func (a Anchors) imageCellSelector() string { return "td." + a.ImageCellClass }

func (a Anchors) cellSelector(label string) string {
	return attrSelector("td", "data-label", label)
}

// attrSelector builds tag[attr="val"], quoting val for CSS.
func attrSelector(tag, attr, val string) string {
	val = strings.ReplaceAll(val, `\`, `\\`)
	val = strings.ReplaceAll(val, `"`, `\"`)
	return tag + "[" + attr + `="` + val + `"]`
}
