package scrape

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AvailablePlans returns the floor plans whose label is one of names and that
// have at least one vacant unit. Labels are compared after NFKC normalization
// and whitespace trimming.
func AvailablePlans(snap Snapshot, names []string) []FloorPlan {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[normalizeLabel(n)] = struct{}{}
	}
	var out []FloorPlan
	for _, f := range snap.FloorPlans() {
		if f.Availability <= 0 {
			continue
		}
		if _, ok := want[normalizeLabel(f.PlanLabel)]; !ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// CategoriesWithBedrooms keeps categories whose bedroom count is listed.
// An empty counts slice keeps everything.
func CategoriesWithBedrooms(snap Snapshot, counts []int) []Category {
	if len(counts) == 0 {
		return snap.Categories
	}
	want := make(map[int]struct{}, len(counts))
	for _, n := range counts {
		want[n] = struct{}{}
	}
	var out []Category
	for _, c := range snap.Categories {
		if _, ok := want[c.Bedrooms]; ok {
			out = append(out, c)
		}
	}
	return out
}

func normalizeLabel(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}
