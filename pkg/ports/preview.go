package ports

import "image"

// MarkKind identifies the edit a preview mark stands for.
type MarkKind int

const (
	MarkCrop MarkKind = iota
	MarkBlur
)

// Mark is an edit rectangle to outline on a preview.
type Mark struct {
	Kind MarkKind
	Rect image.Rectangle
}

// Previewer draws edit rectangles over an image.
type Previewer interface {
	// Preview returns a copy of img with every mark outlined, scaled down
	// to at most maxWidth pixels wide when maxWidth is positive.
	Preview(img image.Image, marks []Mark, maxWidth int) image.Image
}
