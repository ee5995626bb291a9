// Package imgutil decodes and encodes carrier images entirely in memory
// and normalizes them to the 8-bit RGBA pixel layout the codec works on.
package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
)

// Format names returned by Sniff.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
)

var magics = []struct {
	format string
	magic  []byte
}{
	{FormatPNG, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{FormatJPEG, []byte{0xFF, 0xD8, 0xFF}},
	{FormatGIF, []byte("GIF")},
	{FormatBMP, []byte("BM")},
}

// Sniff identifies the image format from its leading magic bytes. It
// returns "" for anything it does not recognize.
func Sniff(data []byte) string {
	for _, m := range magics {
		if bytes.HasPrefix(data, m.magic) {
			return m.format
		}
	}
	return ""
}

// Decode sniffs the format and decodes data into a zero-origin RGBA
// image. GIF carriers are rejected: their pixels are palette indices, so
// per-channel bit substitution has nothing stable to write into.
func Decode(data []byte) (*image.RGBA, string, error) {
	format := Sniff(data)
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case FormatBMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	case FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	case FormatGIF:
		return nil, format, fmt.Errorf("gif carriers are not supported: palette-indexed pixels")
	default:
		return nil, "", fmt.Errorf("unsupported image format")
	}
	if err != nil {
		return nil, format, fmt.Errorf("decode %s: %w", format, err)
	}
	return ToRGBA(img), format, nil
}

// Encode serializes img in the given lossless format. JPEG output is
// refused on purpose: recompression would destroy embedded bits.
func Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot encode stego output as %q: use png or bmp", format)
	}
	return buf.Bytes(), nil
}

// ToRGBA converts any image to a zero-origin RGBA copy. An image that
// already has that shape is returned as-is.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
