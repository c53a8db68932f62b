package scrape

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractCategory_BedroomsFromLeadingDigit(t *testing.T) {
	for _, tc := range []struct {
		name string
		want int
	}{
		{"1 Bed / 1 Bath", 1},
		{"2 Bed / 2 Bath", 2},
		{"  0 Bed / 1 Bath  ", 0},
	} {
		c, err := ExtractCategory(categorySelection(t, categoryHTML(tc.name, defaultRow())), DefaultAnchors())
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.name, err)
		}
		if c.Bedrooms != tc.want {
			t.Fatalf("%q: bedrooms=%d, want %d", tc.name, c.Bedrooms, tc.want)
		}
		if c.Name != strings.TrimSpace(tc.name) {
			t.Fatalf("name not trimmed: %q", c.Name)
		}
		if len(c.FloorPlans) != 1 {
			t.Fatalf("expected 1 floor plan, got %d", len(c.FloorPlans))
		}
	}
}

func TestExtractCategory_NonDigitLabelIsParseError(t *testing.T) {
	for _, name := range []string{"Studio", "", "Penthouse 3 Bed"} {
		_, err := ExtractCategory(categorySelection(t, categoryHTML(name, defaultRow())), DefaultAnchors())
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected ParseError, got %v", name, err)
		}
		if pe.Field != "bedrooms" {
			t.Fatalf("%q: expected bedrooms field, got %q", name, pe.Field)
		}
	}
}

func TestBedroomCount_MultibyteLeadingCharacter(t *testing.T) {
	_, err := bedroomCount("２ Bed / 2 Bath")
	if !errors.Is(err, ErrParse) || !errors.Is(err, errNotDigit) {
		t.Fatalf("expected not-a-digit parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), `leading "２"`) {
		t.Fatalf("error should name the whole character: %v", err)
	}
	if n, err := bedroomCount("0 Bed / 1 Bath"); err != nil || n != 0 {
		t.Fatalf("expected 0, got %d (%v)", n, err)
	}
}

func TestExtractCategory_MissingTableIsStructureError(t *testing.T) {
	markup := `<div class="accordion-group"><a class="accordion-toggle">1 Bed / 1 Bath</a><div class="accordion-body"></div></div>`
	c, err := ExtractCategory(categorySelection(t, markup), DefaultAnchors())
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructureError, got %v (category %+v)", err, c)
	}
	if se.Anchor != "table.table" {
		t.Fatalf("expected table anchor, got %q", se.Anchor)
	}
	if c.FloorPlans != nil || c.Name != "" {
		t.Fatalf("expected zero category on failure, got %+v", c)
	}
}

func TestExtractCategory_MissingToggle(t *testing.T) {
	markup := `<div class="accordion-group"><span>1 Bed</span><table class="table"><tbody></tbody></table></div>`
	_, err := ExtractCategory(categorySelection(t, markup), DefaultAnchors())
	if !errors.Is(err, ErrStructure) {
		t.Fatalf("expected structure error, got %v", err)
	}
	if !strings.Contains(err.Error(), "a.accordion-toggle") {
		t.Fatalf("error should name the toggle anchor: %v", err)
	}
}

func TestExtractCategory_EmptyTableYieldsNoPlans(t *testing.T) {
	c, err := ExtractCategory(categorySelection(t, categoryHTML("3 Bed / 2 Bath")), DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.FloorPlans) != 0 {
		t.Fatalf("expected no floor plans, got %d", len(c.FloorPlans))
	}
}

func TestExtractCategory_IgnoresRowsWithoutScope(t *testing.T) {
	markup := categoryHTML("1 Bed / 1 Bath", defaultRow())
	markup = strings.Replace(markup, "<tbody>", `<tbody><tr class="spacer"><td colspan="6"></td></tr>`, 1)
	c, err := ExtractCategory(categorySelection(t, markup), DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.FloorPlans) != 1 {
		t.Fatalf("expected 1 floor plan, got %d", len(c.FloorPlans))
	}
}

func TestExtractCategory_BadRowAbortsCategory(t *testing.T) {
	bad := defaultRow()
	bad.SqFt = "n/a"
	_, err := ExtractCategory(categorySelection(t, categoryHTML("1 Bed / 1 Bath", defaultRow(), bad)), DefaultAnchors())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("error should locate the row: %v", err)
	}
}
