// Package ggpreview draws edit previews using the gg library.
package ggpreview

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/xcandb/pkg/ports"
)

// Dash pattern of the outlines, matching the viewer's selection rectangle.
const dashLength = 4

var (
	cropColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	blurColor = color.NRGBA{R: 0x40, G: 0xa0, B: 0xff, A: 0xff}
	edgeColor = color.NRGBA{A: 0xff}
)

// Previewer implements ports.Previewer using gg.Context.
type Previewer struct {
	lineWidth float64
}

// New creates a Previewer drawing lines of the given width.
func New(lineWidth float64) *Previewer {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return &Previewer{lineWidth: lineWidth}
}

// Preview outlines each mark with a dashed rectangle over a solid dark
// underlay, so it stays visible on light and dark content alike.
func (p *Previewer) Preview(img image.Image, marks []ports.Mark, maxWidth int) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(p.lineWidth)

	for _, m := range marks {
		r := m.Rect.Canon()
		x, y := float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5
		w, h := float64(r.Dx()-1), float64(r.Dy()-1)

		dc.SetDash()
		dc.SetColor(edgeColor)
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()

		dc.SetDash(dashLength, dashLength)
		dc.SetColor(markColor(m.Kind))
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()
	}

	out := dc.Image()
	if maxWidth <= 0 || out.Bounds().Dx() <= maxWidth {
		return out
	}
	return scale(out, maxWidth)
}

func markColor(kind ports.MarkKind) color.Color {
	if kind == ports.MarkBlur {
		return blurColor
	}
	return cropColor
}

// scale resizes img to the given width, keeping the aspect ratio.
func scale(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := max(b.Dy()*width/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Ensure Previewer implements ports.Previewer
var _ ports.Previewer = (*Previewer)(nil)
