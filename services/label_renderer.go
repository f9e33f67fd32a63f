package services

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/officina-stampa/fulfillment-api/models"
)

// Base label geometry in pixels; exports upscale this by an integer factor.
const (
	LabelWidth  = 300
	LabelHeight = 300

	// ExportScale is the upscale factor applied to exported labels for
	// print-quality output.
	ExportScale = 2
)

// LabelRenderer produces the printable label for an order: customer and
// contact details, classification, color, dimensions and a scannable QR of
// the barcode. Rendering is a pure function of the order snapshot and is
// fully off-screen.
type LabelRenderer struct{}

// Render draws the label at the given integer scale factor (1 = 300x300).
func (LabelRenderer) Render(o models.Order, scale int) (image.Image, error) {
	if scale < 1 {
		scale = 1
	}

	dc := gg.NewContext(LabelWidth, LabelHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, LabelWidth-2, LabelHeight-2)
	dc.Stroke()

	lines := []string{
		fmt.Sprintf("Cliente: %s", o.CustomerName),
		fmt.Sprintf("Tel: %s", orDash(o.PhoneNumber)),
		fmt.Sprintf("Indirizzo: %s", orDash(o.Address)),
		fmt.Sprintf("Tipo: %s", classificationLabel(o)),
		fmt.Sprintf("Colore: %s", o.Color),
		fmt.Sprintf("Dim: %s  Qty: %d", o.Dimensions, o.Quantity),
	}
	y := 24.0
	for _, line := range lines {
		dc.DrawString(line, 12, y)
		y += 18
	}

	code, err := qr.Encode(o.Barcode, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode barcode %q: %w", o.Barcode, err)
	}
	scaled, err := barcode.Scale(code, 132, 132)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode image: %w", err)
	}
	dc.DrawImage(scaled, (LabelWidth-132)/2, 140)
	dc.DrawStringAnchored(o.Barcode, LabelWidth/2, 286, 0.5, 0.5)

	img := dc.Image()
	if scale == 1 {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, LabelWidth*scale, LabelHeight*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst, nil
}

// RenderPNG renders the label and encodes it as PNG.
func (r LabelRenderer) RenderPNG(o models.Order, scale int) ([]byte, error) {
	img, err := r.Render(o, scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode label PNG: %w", err)
	}
	labelsRenderedTotal.Inc()
	return buf.Bytes(), nil
}

// LabelFileName is the deterministic export name for an order's label.
func LabelFileName(orderID uint) string {
	return fmt.Sprintf("etichetta-%d.png", orderID)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func classificationLabel(o models.Order) string {
	name := o.ProductType.Name
	if o.SubCategory != nil && o.SubCategory.Name != "" {
		return fmt.Sprintf("%s (%s)", name, o.SubCategory.Name)
	}
	return name
}
