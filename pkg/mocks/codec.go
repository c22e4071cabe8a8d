package mocks

import (
	"errors"
	"image"

	"github.com/user/xcandb/pkg/ports"
)

// ImageCodec is a mock implementation of ports.ImageCodec.
type ImageCodec struct {
	Formats []ports.ImageFormat

	DecodeImageFunc func(data []byte) (image.Image, error)
	EncodeImageFunc func(img image.Image, format ports.ImageFormat) ([]byte, error)
}

func (m *ImageCodec) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return nil, errors.New("mock: no decoder")
}

func (m *ImageCodec) EncodeImage(img image.Image, format ports.ImageFormat) ([]byte, error) {
	m.Formats = append(m.Formats, format)
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format)
	}
	return []byte("encoded"), nil
}

// Previewer is a mock implementation of ports.Previewer that returns its
// input unchanged.
type Previewer struct {
	Marks    []ports.Mark
	MaxWidth int
	Calls    int
}

func (m *Previewer) Preview(img image.Image, marks []ports.Mark, maxWidth int) image.Image {
	m.Calls++
	m.Marks = append([]ports.Mark(nil), marks...)
	m.MaxWidth = maxWidth
	return img
}

var (
	_ ports.ImageCodec = (*ImageCodec)(nil)
	_ ports.Previewer  = (*Previewer)(nil)
)
