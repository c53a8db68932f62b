package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperifyio/aptwatch/internal/scrape"
)

func writeCategories(w io.Writer, categories []scrape.Category) error {
	for _, c := range categories {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

func writePlans(w io.Writer, plans []scrape.FloorPlan) error {
	for _, p := range plans {
		if _, err := fmt.Fprintln(w, p.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
