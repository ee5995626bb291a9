// Package lsb hides payloads in the low-order bits of an image's color
// channels and recovers them without any out-of-band metadata.
//
// Text and file payloads use 1-bit-per-channel substitution in row-major
// order. A secondary image is stored at 4 bits per channel below a
// reserved header band, trading color depth for an eightfold capacity
// gain. Every operation is synchronous and purely in-memory: the input
// carrier is never mutated and no reference to it is retained.
package lsb

import "image"

// Framing selects how a text payload announces its own end.
type Framing int

const (
	// FramingLength prefixes the payload with a 4-byte big-endian byte
	// count. This is the default.
	FramingLength Framing = iota

	// FramingDelimiter appends "<<END>>" to the payload and scans for it
	// on extraction. It is kept for compatibility with images embedded by
	// the delimiter scheme. Caveat: a payload that itself contains
	// "<<END>>" is silently truncated at the first occurrence; use
	// FramingLength when the payload is not under your control.
	FramingDelimiter
)

// Codec bundles the knobs of the 1-bit scheme. The zero value embeds
// into all three channels with length framing. Codec values are
// stateless; methods never mutate their inputs and may be used from any
// number of goroutines concurrently.
type Codec struct {
	Mask    ChannelMask
	Framing Framing
}

// Package-level wrappers using the default codec.

// EmbedText hides text in cover and returns the stego image.
func EmbedText(cover *image.RGBA, text string) (*image.RGBA, error) {
	return Codec{}.EmbedText(cover, text)
}

// ExtractText recovers a text payload embedded by EmbedText.
func ExtractText(stego *image.RGBA) (string, error) {
	return Codec{}.ExtractText(stego)
}

// EmbedFile hides arbitrary bytes plus their file extension in cover.
func EmbedFile(cover *image.RGBA, data []byte, ext string) (*image.RGBA, error) {
	return Codec{}.EmbedFile(cover, data, ext)
}

// ExtractFile recovers the bytes and extension embedded by EmbedFile.
func ExtractFile(stego *image.RGBA) ([]byte, string, error) {
	return Codec{}.ExtractFile(stego)
}

// EmbedImage hides secret inside cover, downscaling it first if needed.
func EmbedImage(cover, secret *image.RGBA) (*image.RGBA, error) {
	return Codec{}.EmbedImage(cover, secret)
}

// ExtractImage recovers the image embedded by EmbedImage.
func ExtractImage(stego *image.RGBA) (*image.RGBA, error) {
	return Codec{}.ExtractImage(stego)
}
