package app

import (
    "fmt"
    "strconv"

    "github.com/jung-kurt/gofpdf"

    "github.com/hyperifyio/aptwatch/internal/scrape"
)

// writeListingPDF renders categories as a simple table per category with a
// clickable link back to the source page.
func writeListingPDF(categories []scrape.Category, sourceURL string, outPath string) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    // Core fonts are cp1252; translate so "•" and "–" survive
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.AddPage()

    pdf.SetFont("Helvetica", "B", 14)
    pdf.CellFormat(0, 8, "Floor plan availability", "", 1, "L", false, 0, "")
    pdf.SetFont("Helvetica", "", 9)
    pdf.WriteLinkString(5, sourceURL, sourceURL)
    pdf.Ln(8)

    widths := []float64{30, 45, 25, 55, 25}
    headers := []string{"Plan", "Bed / Bath", "Sq Ft", "Rent", "Available"}
    for _, c := range categories {
        pdf.SetFont("Helvetica", "B", 12)
        pdf.CellFormat(0, 8, tr(c.Name), "", 1, "L", false, 0, "")
        if len(c.FloorPlans) == 0 {
            pdf.SetFont("Helvetica", "I", 10)
            pdf.CellFormat(0, 6, "No floor plans listed", "", 1, "L", false, 0, "")
            pdf.Ln(2)
            continue
        }
        pdf.SetFont("Helvetica", "B", 10)
        for i, h := range headers {
            pdf.CellFormat(widths[i], 6, h, "1", 0, "L", false, 0, "")
        }
        pdf.Ln(-1)
        pdf.SetFont("Helvetica", "", 10)
        for _, fp := range c.FloorPlans {
            row := []string{fp.PlanLabel, fp.BedBath, strconv.Itoa(fp.SquareFeet), fp.Rent, strconv.Itoa(fp.Availability)}
            for i, v := range row {
                pdf.CellFormat(widths[i], 6, tr(v), "1", 0, "L", false, 0, "")
            }
            pdf.Ln(-1)
        }
        pdf.Ln(4)
    }
    if err := pdf.Error(); err != nil {
        return fmt.Errorf("render: %w", err)
    }
    return pdf.OutputFileAndClose(outPath)
}
