package lsb

import "image"

// EmbedFile hides data together with its file extension, so extraction
// can name the output without any side channel. The frame carries an
// explicit byte length, which makes this path immune to payload content
// regardless of c.Framing.
func (c Codec) EmbedFile(cover *image.RGBA, data []byte, ext string) (*image.RGBA, error) {
	return c.embedFramed(cover, FrameFile(data, ext))
}

// ExtractFile decodes the carrier's LSB stream, locates the file header
// and slices exactly the declared number of bytes after it. Fails with
// ErrHeaderNotFound when the header marker never appears.
func (c Codec) ExtractFile(stego *image.RGBA) ([]byte, string, error) {
	stream := extractAll(normalized(stego), c.Mask.normalize())
	return ParseFile(stream)
}
