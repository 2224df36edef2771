package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/dashgrid/internal/model"
)

// ShareCode is the compact layout description encoded into a screen's QR code.
type ShareCode struct {
	Screen  string      `json:"screen"`
	Columns int         `json:"cols"`
	Rows    int         `json:"rows"`
	Items   []ShareItem `json:"items"`
}

// ShareItem is one placed widget in a ShareCode.
type ShareItem struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
}

// NewShareCode collects the placed widgets of a screen in natural id order.
func NewShareCode(screen model.Screen) ShareCode {
	code := ShareCode{
		Screen:  screen.Name,
		Columns: screen.Resolution.Columns,
		Rows:    screen.Resolution.Rows,
		Items:   []ShareItem{},
	}
	for _, it := range legendOrder(screen.Items) {
		code.Items = append(code.Items, ShareItem{
			ID: it.ID, Type: it.Type, X: it.X, Y: it.Y, Width: it.Width, Height: it.Height,
		})
	}
	return code
}

// QRCode returns the share code as a PNG image of size x size pixels.
func (c ShareCode) QRCode(size int) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal share code: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// ExportShareCode writes the screen's share code to path as a PNG.
func ExportShareCode(path string, screen model.Screen, size int) error {
	png, err := NewShareCode(screen).QRCode(size)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return os.WriteFile(path, png, 0644)
}

// drawShareCode places the screen's QR code with its top-left corner at
// (x, y). Layouts too large for a QR code get a short note instead.
func drawShareCode(pdf *fpdf.Fpdf, x, y, size float64, screen model.Screen, page int) {
	png, err := NewShareCode(screen).QRCode(256)
	if err != nil {
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(150, 0, 0)
		pdf.SetXY(x, y+size/2-2)
		pdf.CellFormat(size, 4, "Layout too large for QR", "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		return
	}

	imgName := fmt.Sprintf("share_%d", page)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, size, size, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}
