package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/keypoint/keypointer/internal/geometry"
)

// previewScale maps screen points to preview pixels so a 4K layout still
// yields a manageable image.
const previewScale = 0.25

// writeGridPreview renders the grid layout to a PNG: cell borders with the
// key combination centered in each cell.
func writeGridPreview(path string, grid *geometry.Grid) error {
	bounds := grid.Bounds()
	w := int(float64(bounds.Width) * previewScale)
	h := int(float64(bounds.Height) * previewScale)
	if w < 1 || h < 1 {
		return fmt.Errorf("bounds %dx%d too small to render", bounds.Width, bounds.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 24, G: 24, B: 24, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}

	borderColor := color.RGBA{R: 90, G: 90, B: 90, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	for _, cell := range grid.Cells() {
		x1 := int(float64(cell.Bounds.X-bounds.X) * previewScale)
		y1 := int(float64(cell.Bounds.Y-bounds.Y) * previewScale)
		x2 := int(float64(cell.Bounds.X-bounds.X+cell.Bounds.Width) * previewScale)
		y2 := int(float64(cell.Bounds.Y-bounds.Y+cell.Bounds.Height) * previewScale)
		drawRectangle(img, x1, y1, x2, y2, borderColor)

		cx := int(float64(cell.Center.X-bounds.X) * previewScale)
		cy := int(float64(cell.Center.Y-bounds.Y) * previewScale)
		drawTextWithOutline(img, cell.Combo, cx, cy, textColor, outlineColor)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline on the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text with a dark outline for visibility against
// any cell background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13: characters are 7px wide, 13px tall.
	textWidth := len(text) * 7
	offsetX := x - textWidth/2
	offsetY := y + 13/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6((offsetX + dx) * 64),
					Y: fixed.Int26_6((offsetY + dy) * 64),
				},
			}
			d.DrawString(text)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(offsetX * 64),
			Y: fixed.Int26_6(offsetY * 64),
		},
	}
	d.DrawString(text)
}
