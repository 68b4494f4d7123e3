package resumes

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/signintech/gopdf"
)

// WritePDF writes one A4 page per image. Each image fills the page width and
// keeps its aspect ratio, anchored at the top.
func WritePDF(w io.Writer, pages []image.Image) error {
	if len(pages) == 0 {
		return &RenderError{Message: "nothing to write: no pages"}
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pageW := gopdf.PageSizeA4.W

	for i, page := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, page); err != nil {
			return &RenderError{Message: fmt.Sprintf("failed to encode page %d", i+1), Cause: err}
		}
		holder, err := gopdf.ImageHolderByBytes(buf.Bytes())
		if err != nil {
			return &RenderError{Message: fmt.Sprintf("failed to load page %d image", i+1), Cause: err}
		}

		b := page.Bounds()
		h := pageW * float64(b.Dy()) / float64(b.Dx())

		pdf.AddPage()
		if err := pdf.ImageByHolder(holder, 0, 0, &gopdf.Rect{W: pageW, H: h}); err != nil {
			return &RenderError{Message: fmt.Sprintf("failed to place page %d", i+1), Cause: err}
		}
	}

	if err := pdf.Write(w); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}
