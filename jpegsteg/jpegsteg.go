// Package jpegsteg hides data inside JPEG images. Spatial LSB
// substitution does not survive JPEG entropy coding, so this path embeds
// into DCT coefficients via lukechampine.com/jsteg instead, with an
// 8-byte little-endian length prefix framing the payload.
package jpegsteg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/jpeg"

	"lukechampine.com/jsteg"

	"pixveil/lsb"
)

const lengthPrefixBytes = 8

// Hide embeds data in jpegBytes and returns the re-encoded JPEG. Fails
// with lsb.ErrCapacityExceeded when the image's coefficients cannot hold
// the framed payload.
func Hide(jpegBytes, data []byte) ([]byte, error) {
	img, err := jpeg.Decode(bytes.NewReader(jpegBytes))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}
	capacity := jsteg.Capacity(img, nil)
	if len(data)+lengthPrefixBytes > capacity {
		return nil, fmt.Errorf("%w: need %d bytes, jpeg holds %d",
			lsb.ErrCapacityExceeded, len(data)+lengthPrefixBytes, capacity)
	}
	framed := make([]byte, lengthPrefixBytes+len(data))
	binary.LittleEndian.PutUint64(framed, uint64(len(data)))
	copy(framed[lengthPrefixBytes:], data)

	var buf bytes.Buffer
	if err := jsteg.Hide(&buf, img, framed, nil); err != nil {
		return nil, fmt.Errorf("hide in jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Reveal recovers the data embedded by Hide. Fails with
// lsb.ErrHeaderNotFound when the length prefix is missing or implausible.
func Reveal(jpegBytes []byte) ([]byte, error) {
	hidden, err := jsteg.Reveal(bytes.NewReader(jpegBytes))
	if err != nil {
		return nil, fmt.Errorf("reveal from jpeg: %w", err)
	}
	if len(hidden) < lengthPrefixBytes {
		return nil, fmt.Errorf("%w: jpeg carries fewer than %d bytes",
			lsb.ErrHeaderNotFound, lengthPrefixBytes)
	}
	n := binary.LittleEndian.Uint64(hidden[:lengthPrefixBytes])
	if n > uint64(len(hidden)-lengthPrefixBytes) {
		return nil, fmt.Errorf("%w: declared length %d exceeds revealed %d bytes",
			lsb.ErrHeaderNotFound, n, len(hidden)-lengthPrefixBytes)
	}
	return hidden[lengthPrefixBytes : lengthPrefixBytes+int(n)], nil
}
