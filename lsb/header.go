package lsb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// ASCII markers that terminate a header or payload inside the bitstream.
// None of them may appear inside the encoded header itself; user payload
// content is not re-validated against them (see Framing).
const (
	endDelimiter  = "<<END>>"
	dimDelimiter  = "<<DIM>>"
	fileDelimiter = "<<HEADER>>"
)

// lengthPrefixBytes is the size of the byte-count header used by
// FramingLength.
const lengthPrefixBytes = 4

// Secret image dimensions are capped at five decimal digits, which bounds
// the dimension header and lets both sides reserve the same fixed band of
// carrier pixels for it (dimHeaderPixels at one bit per channel).
const (
	maxSecretDim      = 99999
	dimHeaderMaxBytes = len("99999x99999") + len(dimDelimiter)
	dimHeaderPixels   = (dimHeaderMaxBytes*8 + 2) / 3
)

// headerBandRows returns the number of leading carrier rows reserved for
// the dimension header. It depends only on the carrier width, so embedder
// and extractor always agree on where the payload region starts.
func headerBandRows(carrierWidth int) int {
	return (dimHeaderPixels + carrierWidth - 1) / carrierWidth
}

// frameLength prefixes data with its byte count, big-endian.
func frameLength(data []byte) []byte {
	out := make([]byte, lengthPrefixBytes+len(data))
	binary.BigEndian.PutUint32(out, uint32(len(data)))
	copy(out[lengthPrefixBytes:], data)
	return out
}

// FrameFile frames file contents as "{byte_length}:{extension}<<HEADER>>"
// followed by the raw bytes and a trailing end marker. The trailing marker
// is written for parity with the text scheme; extraction relies on the
// explicit length alone.
func FrameFile(data []byte, ext string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d:%s%s", len(data), ext, fileDelimiter)
	buf.Write(data)
	buf.WriteString(endDelimiter)
	return buf.Bytes()
}

// ParseFile recovers the file bytes and extension from a decoded byte
// stream produced by FrameFile. It fails with ErrHeaderNotFound when the
// header marker is absent or its fields do not parse.
func ParseFile(stream []byte) ([]byte, string, error) {
	i := bytes.Index(stream, []byte(fileDelimiter))
	if i < 0 {
		return nil, "", fmt.Errorf("%w: no %q marker in decoded stream",
			ErrHeaderNotFound, fileDelimiter)
	}
	header := string(stream[:i])
	lengthStr, ext, ok := strings.Cut(header, ":")
	if !ok {
		return nil, "", fmt.Errorf("%w: malformed file header %q",
			ErrHeaderNotFound, header)
	}
	n, err := strconv.Atoi(lengthStr)
	if err != nil || n < 0 {
		return nil, "", fmt.Errorf("%w: bad length in file header %q",
			ErrHeaderNotFound, header)
	}
	start := i + len(fileDelimiter)
	if start+n > len(stream) {
		return nil, "", fmt.Errorf("%w: header declares %d bytes, stream has %d",
			ErrHeaderNotFound, n, len(stream)-start)
	}
	return stream[start : start+n], ext, nil
}

// frameDim renders the "{w}x{h}<<DIM>>" dimension header.
func frameDim(w, h int) []byte {
	return []byte(fmt.Sprintf("%dx%d%s", w, h, dimDelimiter))
}

// parseDim locates the dimension header inside the reserved band bytes
// and returns the declared secret dimensions.
func parseDim(band []byte) (w, h int, err error) {
	i := bytes.Index(band, []byte(dimDelimiter))
	if i < 0 {
		return 0, 0, fmt.Errorf("%w: no %q marker within the first %d bytes",
			ErrHeaderNotFound, dimDelimiter, len(band))
	}
	// Bytes outside the printable ASCII range cannot belong to a valid
	// header; mapping them keeps the error message readable.
	dims := strings.Map(func(r rune) rune {
		if r >= 128 {
			return '?'
		}
		return r
	}, string(band[:i]))
	ws, hs, ok := strings.Cut(dims, "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: malformed dimension header %q",
			ErrHeaderNotFound, dims)
	}
	w, err = strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad width in %q", ErrHeaderNotFound, dims)
	}
	h, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad height in %q", ErrHeaderNotFound, dims)
	}
	if w < 1 || h < 1 || w > maxSecretDim || h > maxSecretDim {
		return 0, 0, fmt.Errorf("%w: dimensions %dx%d out of range",
			ErrHeaderNotFound, w, h)
	}
	return w, h, nil
}
