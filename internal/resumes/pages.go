package resumes

import (
	"image"
	"math"
)

// A4 page size in millimetres.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// SplitPages cuts a tall page image into slices whose aspect ratio matches a
// pageWidth x pageHeight page. Cuts fall at fixed heights regardless of content;
// the last slice may be shorter.
func SplitPages(img image.Image, pageWidth, pageHeight float64) []image.Image {
	b := img.Bounds()
	if b.Empty() || pageWidth <= 0 || pageHeight <= 0 {
		return nil
	}

	slicePx := int(math.Round(float64(b.Dx()) * pageHeight / pageWidth))
	if slicePx < 1 {
		slicePx = 1
	}

	si, ok := img.(subImager)
	if !ok {
		rgba := image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
		si = rgba
	}

	var pages []image.Image
	for top := b.Min.Y; top < b.Max.Y; top += slicePx {
		bottom := min(top+slicePx, b.Max.Y)
		pages = append(pages, si.SubImage(image.Rect(b.Min.X, top, b.Max.X, bottom)))
	}
	return pages
}
