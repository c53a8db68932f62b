package scrape

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses raw markup and extracts a snapshot from it. sourceURL is
// carried through untouched for consumers that want to link back to the page.
func ParseHTML(r io.Reader, sourceURL string, a Anchors) (Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse html: %w", err)
	}
	snap, err := ExtractPage(doc, a)
	if err != nil {
		return Snapshot{}, err
	}
	snap.SourceURL = sourceURL
	return snap, nil
}

// ExtractPage locates the floor plan container and extracts every category
// group directly beneath it, in document order. A failure in any category
// aborts the whole page.
func ExtractPage(doc *goquery.Document, a Anchors) (Snapshot, error) {
	container := doc.Find(a.containerSelector()).First()
	if container.Length() == 0 {
		return Snapshot{}, missing("", "#"+a.ContainerID)
	}
	groups := container.ChildrenFiltered(a.groupSelector())
	categories := make([]Category, 0, groups.Length())
	for i := 0; i < groups.Length(); i++ {
		c, err := ExtractCategory(groups.Eq(i), a)
		if err != nil {
			return Snapshot{}, fmt.Errorf("category %d: %w", i, err)
		}
		categories = append(categories, c)
	}
	return Snapshot{Categories: categories}, nil
}
