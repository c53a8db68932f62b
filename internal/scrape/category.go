package scrape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ExtractCategory extracts the label, bedroom count and floor plan rows of one
// category fragment.
func ExtractCategory(s *goquery.Selection, a Anchors) (Category, error) {
	name, err := categoryName(s, a)
	if err != nil {
		return Category{}, err
	}
	bedrooms, err := bedroomCount(name)
	if err != nil {
		return Category{}, err
	}
	plans, err := categoryFloorPlans(s, a)
	if err != nil {
		return Category{}, fmt.Errorf("%s: %w", name, err)
	}
	return Category{Name: name, Bedrooms: bedrooms, FloorPlans: plans}, nil
}

func categoryName(s *goquery.Selection, a Anchors) (string, error) {
	toggle := s.Find(a.toggleSelector()).First()
	if toggle.Length() == 0 {
		return "", missing("name", a.toggleSelector())
	}
	return strings.TrimSpace(toggle.Text()), nil
}

// bedroomCount reads the leading digit of a label like "2 Bed / 2 Bath".
// Labels without one ("Studio") are rejected rather than guessed.
func bedroomCount(name string) (int, error) {
	if name == "" {
		return 0, &ParseError{Field: "bedrooms", Value: name, Err: errEmpty}
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r < '0' || r > '9' {
		return 0, &ParseError{Field: "bedrooms", Value: name, Err: fmt.Errorf("leading %q: %w", string(r), errNotDigit)}
	}
	return int(r - '0'), nil
}

func categoryFloorPlans(s *goquery.Selection, a Anchors) ([]FloorPlan, error) {
	table := s.Find(a.tableSelector()).First()
	if table.Length() == 0 {
		return nil, missing("floor_plans", a.tableSelector())
	}
	body := table.Find("tbody").First()
	if body.Length() == 0 {
		return nil, missing("floor_plans", a.tableSelector()+" tbody")
	}
	rows := body.Find(a.rowSelector())
	plans := make([]FloorPlan, 0, rows.Length())
	for i := 0; i < rows.Length(); i++ {
		fp, err := ExtractRow(rows.Eq(i), a)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		plans = append(plans, fp)
	}
	return plans, nil
}
