package converter

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/phpdave11/gofpdf"
)

const pdfImageID = "page_0"

// imageToPDF places a decodable bitmap on a single page sized to it,
// one pixel per point.
func imageToPDF(file InputFile) (*ConversionResult, error) {
	data, err := readInput(file)
	if err != nil {
		return nil, err
	}

	img, err := decodeBitmap(data)
	if err != nil {
		return nil, err
	}

	surface := drawOnSurface(img)
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, surface); err != nil {
		return nil, &EncodeError{Format: "pdf", Err: fmt.Errorf("page image: %w", err)}
	}

	width := float64(surface.Bounds().Dx())
	height := float64(surface.Bounds().Dy())

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})

	options := gofpdf.ImageOptions{
		ImageType: "PNG",
		ReadDpi:   false,
	}
	pdf.RegisterImageOptionsReader(pdfImageID, options, &imgBuf)
	pdf.ImageOptions(pdfImageID, 0, 0, width, height, false, options, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, &EncodeError{Format: "pdf", Err: err}
	}
	if out.Len() == 0 {
		return nil, &EncodeError{Format: "pdf"}
	}
	return &ConversionResult{Data: out.Bytes(), MediaType: mimePDF}, nil
}
