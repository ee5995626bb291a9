package lsb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
)

// EmbedText frames text according to c.Framing and substitutes the frame
// into the masked channel LSBs of a copy of cover. Fails with
// ErrCapacityExceeded when the framed payload does not fit; cover is
// untouched in that case.
func (c Codec) EmbedText(cover *image.RGBA, text string) (*image.RGBA, error) {
	var framed []byte
	switch c.Framing {
	case FramingDelimiter:
		framed = append([]byte(text), endDelimiter...)
	default:
		framed = frameLength([]byte(text))
	}
	return c.embedFramed(cover, framed)
}

// ExtractText recovers a text payload using the codec's framing. Length
// framing fails with ErrHeaderNotFound when the declared length cannot
// fit in the carrier; delimiter framing fails with ErrDelimiterNotFound
// after a full scan without a match.
func (c Codec) ExtractText(stego *image.RGBA) (string, error) {
	img := normalized(stego)
	switch c.Framing {
	case FramingDelimiter:
		b, err := extractDelimited(img, c.Mask.normalize())
		return string(b), err
	default:
		b, err := extractLengthFramed(img, c.Mask.normalize())
		return string(b), err
	}
}

// embedFramed is the shared 1-bit embedding path: capacity check first,
// then clone, then substitution.
func (c Codec) embedFramed(cover *image.RGBA, framed []byte) (*image.RGBA, error) {
	mask := c.Mask.normalize()
	bits := bytesToBits(framed)
	capacity := Capacity(cover.Rect.Dx(), cover.Rect.Dy(), mask.count(), 1)
	if err := checkCapacity(len(bits), capacity); err != nil {
		return nil, err
	}
	stego := cloneCover(cover)
	embedBits(stego, bits, mask)
	return stego, nil
}

// extractDelimited scans LSBs byte by byte, stopping at the first
// occurrence of the end marker.
func extractDelimited(img *image.RGBA, mask ChannelMask) ([]byte, error) {
	delim := []byte(endDelimiter)
	var acc []byte
	found := scanBytes(img, mask, func(b byte) bool {
		acc = append(acc, b)
		return bytes.HasSuffix(acc, delim)
	})
	if !found {
		return nil, fmt.Errorf("%w: scanned %d bytes without %q",
			ErrDelimiterNotFound, len(acc), endDelimiter)
	}
	return acc[:len(acc)-len(delim)], nil
}

// extractLengthFramed reads the 4-byte length prefix, sanity-checks it
// against the carrier's capacity and then reads exactly that many bytes.
func extractLengthFramed(img *image.RGBA, mask ChannelMask) ([]byte, error) {
	capacity := Capacity(img.Rect.Dx(), img.Rect.Dy(), mask.count(), 1)
	prefix := extractLimit(img, mask, lengthPrefixBytes)
	if len(prefix) < lengthPrefixBytes {
		return nil, fmt.Errorf("%w: carrier smaller than the length prefix",
			ErrHeaderNotFound)
	}
	n := int(binary.BigEndian.Uint32(prefix))
	if (lengthPrefixBytes+n)*8 > capacity {
		return nil, fmt.Errorf("%w: declared length %d exceeds carrier capacity",
			ErrHeaderNotFound, n)
	}
	stream := extractLimit(img, mask, lengthPrefixBytes+n)
	return stream[lengthPrefixBytes:], nil
}
