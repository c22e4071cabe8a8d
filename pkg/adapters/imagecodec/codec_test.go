package imagecodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/user/xcandb/pkg/ports"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 7, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 40), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestCodec_LosslessRoundTrip(t *testing.T) {
	codec := New()
	src := testImage()

	for _, format := range []ports.ImageFormat{ports.FormatPNG, ports.FormatBMP, ports.FormatTIFF} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := codec.EncodeImage(src, format)
			if err != nil {
				t.Fatalf("EncodeImage failed: %v", err)
			}

			img, err := codec.DecodeImage(data)
			if err != nil {
				t.Fatalf("DecodeImage failed: %v", err)
			}
			if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 5 {
				t.Fatalf("expected 7x5, got %v", img.Bounds())
			}

			for y := 0; y < 5; y++ {
				for x := 0; x < 7; x++ {
					got := color.NRGBAModel.Convert(img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)).(color.NRGBA)
					want := src.NRGBAAt(x, y)
					if got.R != want.R || got.G != want.G || got.B != want.B {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestCodec_DecodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}

	img, err := New().DecodeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 5 {
		t.Errorf("expected 7x5, got %v", img.Bounds())
	}
}

func TestCodec_DecodeGarbage(t *testing.T) {
	if _, err := New().DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestCodec_UnsupportedFormat(t *testing.T) {
	_, err := New().EncodeImage(testImage(), ports.ImageFormat(42))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]ports.ImageFormat{
		"a.png":        ports.FormatPNG,
		"a.PNG":        ports.FormatPNG,
		"a.bmp":        ports.FormatBMP,
		"dir/a.tif":    ports.FormatTIFF,
		"a.TIFF":       ports.FormatTIFF,
		"a.jpg":        ports.FormatPNG,
		"no-extension": ports.FormatPNG,
	}
	for path, want := range tests {
		if got := ports.FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}
