package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/dashgrid/internal/engine"
	"github.com/piwi3910/dashgrid/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	shareSize    = 30.0
)

// PDFOptions controls optional parts of the PDF rendering.
type PDFOptions struct {
	ShareCode bool // draw a QR code of the layout next to each screen
}

// ExportPDF generates a PDF document of the dashboard layout.
// Each screen is rendered on its own page with its grid and widgets,
// followed by a summary page listing every screen and any layout defects.
func ExportPDF(path string, d model.Dashboard, opts PDFOptions) error {
	if len(d.Screens) == 0 {
		return fmt.Errorf("no screens to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(d.Name, true)

	for i, screen := range d.Screens {
		pdf.AddPage()
		renderScreenPage(pdf, screen, opts, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, d)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// renderScreenPage draws a single screen on the current PDF page.
func renderScreenPage(pdf *fpdf.Fpdf, screen model.Screen, opts PDFOptions, page int) {
	res := screen.Resolution
	rows := displayRows(screen)
	placed := legendOrder(screen.Items)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Screen %d: %s (%d x %d)", page, screen.Name, res.Columns, res.Rows)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	area := 0
	for _, it := range placed {
		area += it.Area()
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Widgets: %d | Unplaced: %d | Rows used: %d | Covered cells: %d",
		len(placed), len(screen.Items)-len(placed), model.MaxBottom(placed), area)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	if opts.ShareCode {
		drawWidth -= shareSize + 5
		drawShareCode(pdf, pageWidth-marginRight-shareSize, drawAreaTop, shareSize, screen, page)
	}
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	cell := math.Min(drawWidth/float64(max(res.Columns, 1)), drawHeight/float64(rows))
	canvasW := float64(res.Columns) * cell
	canvasH := float64(rows) * cell
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	drawGrid(pdf, res, rows, cell, offsetX, offsetY)

	flagged := make(map[string]bool)
	for _, c := range engine.CheckCollisions(screen.Items, res) {
		flagged[c.ItemID] = true
		if c.OtherID != "" {
			flagged[c.OtherID] = true
		}
	}

	for i, it := range placed {
		col := colorAt(i)
		px := offsetX + float64(it.X)*cell
		py := offsetY + float64(it.Y)*cell
		pw := float64(it.Width) * cell
		ph := float64(it.Height) * cell

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px+0.5, py+0.5, pw-1, ph-1, "FD")
		if flagged[it.ID] {
			drawHatchPattern(pdf, px+0.5, py+0.5, pw-1, ph-1)
		}

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := itemLabel(it)
			dims := it.Size().String()
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawLegend(pdf, placed, offsetY+canvasH+5)
}

// drawGrid draws the cell lines and marks the advisory row limit when items
// extend below it.
func drawGrid(pdf *fpdf.Fpdf, res model.Resolution, rows int, cell, offsetX, offsetY float64) {
	canvasW := float64(res.Columns) * cell
	canvasH := float64(rows) * cell

	pdf.SetFillColor(250, 250, 250)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.1)
	for c := 1; c < res.Columns; c++ {
		x := offsetX + float64(c)*cell
		pdf.Line(x, offsetY, x, offsetY+canvasH)
	}
	for r := 1; r < rows; r++ {
		y := offsetY + float64(r)*cell
		pdf.Line(offsetX, y, offsetX+canvasW, y)
	}

	if rows > res.Rows {
		y := offsetY + float64(res.Rows)*cell
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.4)
		pdf.SetDashPattern([]float64{2, 1}, 0)
		pdf.Line(offsetX, y, offsetX+canvasW, y)
		pdf.SetDashPattern([]float64{}, 0)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to flag a widget
// that overlaps another or leaves the grid.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 3.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawLegend renders a compact legend of placed widgets below the grid.
func drawLegend(pdf *fpdf.Fpdf, placed []model.GridItem, startY float64) {
	if len(placed) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Widgets:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, it := range placed {
		col := colorAt(i)
		label := fmt.Sprintf("%s %s %s @ %s", it.ID, itemLabel(it), it.Size(), it.Position())
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with one row per screen and the
// collision warnings of the whole dashboard.
func renderSummaryPage(pdf *fpdf.Fpdf, d model.Dashboard) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Dashboard Summary: "+d.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{15, 70, 35, 30, 30, 35}
	headers := []string{"#", "Screen", "Grid", "Widgets", "Unplaced", "Rows Used"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	var warnings []string
	pdf.SetFont("Helvetica", "", 9)
	for i, screen := range d.Screens {
		placed := screen.PlacedItems()
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			screen.Name,
			screen.Resolution.String(),
			fmt.Sprintf("%d", len(placed)),
			fmt.Sprintf("%d", len(screen.Items)-len(placed)),
			fmt.Sprintf("%d", model.MaxBottom(placed)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6

		collisions := engine.CheckCollisions(screen.Items, screen.Resolution)
		warnings = append(warnings, engine.FormatCollisionWarnings(screen.Name, collisions)...)
	}

	if len(warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Layout Defects", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for i, w := range warnings {
			if y > pageHeight-marginBottom-8 {
				pdf.SetXY(marginLeft+5, y)
				pdf.CellFormat(200, 5, fmt.Sprintf("... and %d more", len(warnings)-i), "", 0, "L", false, 0, "")
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by dashgrid", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
