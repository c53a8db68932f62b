package scrape

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractRow extracts one floor plan from a table row. Either every field is
// found or an error naming the field is returned.
func ExtractRow(s *goquery.Selection, a Anchors) (FloorPlan, error) {
	var (
		fp  FloorPlan
		err error
	)
	if fp.LayoutImageURL, err = layoutImageURL(s, a); err != nil {
		return FloorPlan{}, err
	}
	if fp.PlanLabel, err = planLabel(s, a); err != nil {
		return FloorPlan{}, err
	}
	if fp.BedBath, err = bedBath(s, a); err != nil {
		return FloorPlan{}, err
	}
	if fp.SquareFeet, err = squareFeet(s, a); err != nil {
		return FloorPlan{}, err
	}
	if fp.Rent, err = rent(s, a); err != nil {
		return FloorPlan{}, err
	}
	if fp.Availability, err = availability(s, a); err != nil {
		return FloorPlan{}, err
	}
	return fp, nil
}

func layoutImageURL(s *goquery.Selection, a Anchors) (string, error) {
	const field = "layout_image_url"
	cell := s.Find(a.imageCellSelector()).First()
	if cell.Length() == 0 {
		return "", missing(field, a.imageCellSelector())
	}
	img := cell.Find("img").First()
	if img.Length() == 0 {
		return "", missing(field, a.imageCellSelector()+" img")
	}
	src, ok := img.Attr(a.ImageSrcAttr)
	if !ok {
		return "", missing(field, "img["+a.ImageSrcAttr+"]")
	}
	if strings.TrimSpace(src) == "" {
		return "", &ParseError{Field: field, Value: src, Err: errEmpty}
	}
	return escapeLastSegment(src), nil
}

// escapeLastSegment percent-encodes only what follows the final '/', so file
// names with spaces become URL-safe while the directory stays as written.
// Everything but unreserved characters (A-Z a-z 0-9 - . _ ~) is escaped.
func escapeLastSegment(src string) string {
	i := strings.LastIndex(src, "/")
	return src[:i+1] + strings.ReplaceAll(url.QueryEscape(src[i+1:]), "+", "%20")
}

func planLabel(s *goquery.Selection, a Anchors) (string, error) {
	text, err := textAfterLabel(s, a.cellSelector(a.PlanLabel), "plan")
	if err != nil {
		return "", err
	}
	return text.Data, nil
}

func bedBath(s *goquery.Selection, a Anchors) (string, error) {
	text, err := textAfterLabel(s, a.cellSelector(a.BedsLabel), "bed_bath")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text.Data), nil
}

func squareFeet(s *goquery.Selection, a Anchors) (int, error) {
	const field = "square_feet"
	sel := a.cellSelector(a.SqFtLabel)
	cell, err := findCell(s, sel, field)
	if err != nil {
		return 0, err
	}
	text := firstText(cell.Nodes[0])
	if text == nil {
		return 0, missing(field, sel+" text")
	}
	return parseCount(field, strings.ReplaceAll(text.Data, ",", ""))
}

// rent joins the low bound (text after the label span) with the high bound
// (text after the node that follows the low bound). The markup already
// carries the separator between them.
func rent(s *goquery.Selection, a Anchors) (string, error) {
	const field = "rent"
	sel := a.cellSelector(a.RentLabel)
	low, err := textAfterLabel(s, sel, field)
	if err != nil {
		return "", err
	}
	high := nextText(low.NextSibling)
	if high == nil {
		return "", missing(field, sel+" high bound text")
	}
	return low.Data + high.Data, nil
}

// availability is the count inside the cell's span. The page leaves the span
// empty when no unit of the plan is vacant, which reads as zero.
func availability(s *goquery.Selection, a Anchors) (int, error) {
	const field = "availability"
	sel := a.cellSelector(a.AvailabilityLabel)
	cell, err := findCell(s, sel, field)
	if err != nil {
		return 0, err
	}
	span := cell.Find("span").First()
	if span.Length() == 0 {
		return 0, missing(field, sel+" span")
	}
	first := span.Nodes[0].FirstChild
	if first == nil {
		return 0, nil
	}
	return parseCount(field, nodeText(first))
}

func findCell(s *goquery.Selection, sel, field string) (*goquery.Selection, error) {
	cell := s.Find(sel).First()
	if cell.Length() == 0 {
		return nil, missing(field, sel)
	}
	return cell, nil
}

// textAfterLabel returns the text node following the first span of a cell.
// Cells render as <td><span>Label</span>value</td>; only value is wanted.
func textAfterLabel(s *goquery.Selection, sel, field string) (*html.Node, error) {
	cell, err := findCell(s, sel, field)
	if err != nil {
		return nil, err
	}
	span := cell.Find("span").First()
	if span.Length() == 0 {
		return nil, missing(field, sel+" span")
	}
	text := nextText(span.Nodes[0])
	if text == nil {
		return nil, missing(field, sel+" span text")
	}
	return text, nil
}

func parseCount(field, raw string) (int, error) {
	v := strings.TrimSpace(raw)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ParseError{Field: field, Value: raw, Err: err}
	}
	if n < 0 {
		return 0, &ParseError{Field: field, Value: raw, Err: errNegative}
	}
	return n, nil
}
