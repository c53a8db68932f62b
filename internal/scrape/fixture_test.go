package scrape

import (
    "fmt"
    "strings"
    "testing"

    "github.com/PuerkitoBio/goquery"
)

type rowFixture struct {
    Image        string
    Plan         string
    Beds         string
    SqFt         string
    RentLow      string
    RentHigh     string
    Availability string // inner HTML of the availability span
}

func defaultRow() rowFixture {
    return rowFixture{
        Image:        "https://cdn.example.com/floorplans/dir/My Plan A1.jpg",
        Plan:         "A1",
        Beds:         " 1 Bed / 1 Bath ",
        SqFt:         "1,234",
        RentLow:      "$1,200 ",
        RentHigh:     "- $1,450",
        Availability: "2",
    }
}

func (r rowFixture) html() string {
    return fmt.Sprintf(`<tr scope="row">
<td class="floorplan-img" data-label="Layout"><img src="placeholder.gif" data-src="%s" alt=""></td>
<td data-label="Floor Plan"><span class="sr-only">Floor Plan</span>%s</td>
<td data-label="Beds"><span class="sr-only">Beds</span>%s</td>
<td data-label="SQ. FT.">%s</td>
<td data-label="Rent"><span class="sr-only">Rent</span>%s<br>%s</td>
<td data-label="Availability"><span class="avail">%s</span></td>
</tr>`, r.Image, r.Plan, r.Beds, r.SqFt, r.RentLow, r.RentHigh, r.Availability)
}

func categoryHTML(name string, rows ...rowFixture) string {
    var b strings.Builder
    b.WriteString(`<div class="accordion-group">`)
    b.WriteString(`<div class="accordion-heading"><a class="accordion-toggle" data-toggle="collapse" href="#c">`)
    b.WriteString(name)
    b.WriteString(`</a></div><div class="accordion-body"><table class="table table-striped"><thead><tr><th>Layout</th></tr></thead><tbody>`)
    for _, r := range rows {
        b.WriteString(r.html())
    }
    b.WriteString(`</tbody></table></div></div>`)
    return b.String()
}

func pageHTML(categories ...string) string {
    return `<!doctype html><html><head><title>Floor Plans</title></head><body>
<div id="floorplanlist">` + strings.Join(categories, "\n") + `</div>
<div class="accordion-group"><a class="accordion-toggle">9 Outside</a></div>
</body></html>`
}

func mustDoc(t testing.TB, markup string) *goquery.Document {
    t.Helper()
    doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
    if err != nil {
        t.Fatalf("parse fixture: %v", err)
    }
    return doc
}

// rowSelection wraps a single row in a table so the parser keeps the tr.
func rowSelection(t testing.TB, r rowFixture) *goquery.Selection {
    t.Helper()
    doc := mustDoc(t, `<table class="table"><tbody>`+r.html()+`</tbody></table>`)
    sel := doc.Find(`tr[scope="row"]`)
    if sel.Length() != 1 {
        t.Fatalf("fixture produced %d rows", sel.Length())
    }
    return sel
}

func categorySelection(t testing.TB, markup string) *goquery.Selection {
    t.Helper()
    doc := mustDoc(t, markup)
    sel := doc.Find("div.accordion-group").First()
    if sel.Length() != 1 {
        t.Fatalf("fixture has no category group")
    }
    return sel
}
