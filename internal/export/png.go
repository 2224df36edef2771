package export

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/piwi3910/dashgrid/internal/model"
)

const defaultCellSize = 48

var (
	pngBackground = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	pngGridLine   = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	pngRowLimit   = color.NRGBA{R: 200, G: 0, B: 0, A: 255}
)

// RenderPNG draws a screen as an image with cellSize pixels per grid cell.
// Widgets are blended onto the grid so that overlapping widgets stay
// visible as a mixed color.
func RenderPNG(screen model.Screen, cellSize int) *image.NRGBA {
	if cellSize < 4 {
		cellSize = defaultCellSize
	}
	res := screen.Resolution
	cols := max(res.Columns, 1)
	rows := displayRows(screen)

	img := imaging.New(cols*cellSize+1, rows*cellSize+1, pngBackground)

	vline := imaging.New(1, rows*cellSize+1, pngGridLine)
	for c := 0; c <= cols; c++ {
		img = imaging.Paste(img, vline, image.Pt(c*cellSize, 0))
	}
	hline := imaging.New(cols*cellSize+1, 1, pngGridLine)
	for r := 0; r <= rows; r++ {
		img = imaging.Paste(img, hline, image.Pt(0, r*cellSize))
	}
	if rows > res.Rows && res.Rows > 0 {
		limit := imaging.New(cols*cellSize+1, 2, pngRowLimit)
		img = imaging.Paste(img, limit, image.Pt(0, res.Rows*cellSize-1))
	}

	for i, it := range legendOrder(screen.Items) {
		w, h := it.Width*cellSize-3, it.Height*cellSize-3
		if w < 1 || h < 1 {
			continue
		}
		tile := imaging.New(w, h, colorAt(i).NRGBA())
		img = imaging.Overlay(img, tile, image.Pt(it.X*cellSize+2, it.Y*cellSize+2), 0.85)
	}

	return img
}

// ExportPNG writes a PNG preview of screen to path.
func ExportPNG(path string, screen model.Screen, cellSize int) error {
	img := RenderPNG(screen, cellSize)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	defer file.Close()

	if err := imaging.Encode(file, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
