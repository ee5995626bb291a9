package lsb

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"
)

// newCarrier builds a deterministic opaque gradient carrier.
func newCarrier(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(i * 7)
		img.Pix[i+1] = uint8(i * 13)
		img.Pix[i+2] = uint8(i * 29)
		img.Pix[i+3] = 0xFF
	}
	return img
}

// blackCarrier builds a carrier whose LSB stream is all zeroes.
func blackCarrier(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img
}

func TestTextRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"a",
		"Hello world!",
		"héllo, wörld — ünïcode",
		strings.Repeat("lorem ipsum ", 40),
	}
	for _, framing := range []Framing{FramingLength, FramingDelimiter} {
		c := Codec{Framing: framing}
		for _, text := range texts {
			cover := newCarrier(64, 64)
			stego, err := c.EmbedText(cover, text)
			if err != nil {
				t.Fatalf("framing %d: embed %q: %v", framing, text, err)
			}
			got, err := c.ExtractText(stego)
			if err != nil {
				t.Fatalf("framing %d: extract %q: %v", framing, text, err)
			}
			if got != text {
				t.Errorf("framing %d: round trip changed %q into %q", framing, text, got)
			}
		}
	}
}

func TestTextRoundTripChannelMasks(t *testing.T) {
	masks := []ChannelMask{Red, Green, Blue, Red | Green, Red | Blue, Green | Blue, AllChannels}
	for _, mask := range masks {
		c := Codec{Mask: mask}
		stego, err := c.EmbedText(newCarrier(48, 48), "masked payload")
		if err != nil {
			t.Fatalf("mask %v: embed: %v", mask, err)
		}
		got, err := c.ExtractText(stego)
		if err != nil {
			t.Fatalf("mask %v: extract: %v", mask, err)
		}
		if got != "masked payload" {
			t.Errorf("mask %v: got %q", mask, got)
		}
	}
}

func TestTextCapacityBoundaries(t *testing.T) {
	legacy := Codec{Framing: FramingDelimiter}

	// A 4x4 carrier holds 48 bits. "hi<<END>>" needs 72 and "a<<END>>"
	// needs 64, so both must be rejected before any pixel is written.
	for _, text := range []string{"hi", "a"} {
		if _, err := legacy.EmbedText(newCarrier(4, 4), text); !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("embed %q in 4x4: expected ErrCapacityExceeded, got %v", text, err)
		}
	}

	// 22 pixels give 66 bits, just enough for the 64-bit "a<<END>>".
	stego, err := legacy.EmbedText(newCarrier(22, 1), "a")
	if err != nil {
		t.Fatalf("embed in 22-pixel carrier: %v", err)
	}
	if got, err := legacy.ExtractText(stego); err != nil || got != "a" {
		t.Fatalf("extract from 22-pixel carrier: %q, %v", got, err)
	}

	// 21 pixels give 63 bits, one bit short.
	if _, err := legacy.EmbedText(newCarrier(21, 1), "a"); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("21-pixel carrier: expected ErrCapacityExceeded, got %v", err)
	}

	// Exact fit: a single-channel 8x8 carrier holds exactly 64 bits.
	exact := Codec{Mask: Red, Framing: FramingDelimiter}
	stego, err = exact.EmbedText(newCarrier(8, 8), "a")
	if err != nil {
		t.Fatalf("exact-capacity embed: %v", err)
	}
	if got, err := exact.ExtractText(stego); err != nil || got != "a" {
		t.Fatalf("exact-capacity extract: %q, %v", got, err)
	}
	if _, err := exact.EmbedText(newCarrier(63, 1), "a"); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("one bit beyond capacity: expected ErrCapacityExceeded, got %v", err)
	}
}

func TestDelimiterCollisionTruncates(t *testing.T) {
	// Documented legacy behavior: a payload containing the delimiter is
	// cut at its first occurrence. Length framing is immune.
	legacy := Codec{Framing: FramingDelimiter}
	stego, err := legacy.EmbedText(newCarrier(32, 32), "ab<<END>>cd")
	if err != nil {
		t.Fatal(err)
	}
	got, err := legacy.ExtractText(stego)
	if err != nil || got != "ab" {
		t.Errorf("legacy framing: expected truncation to %q, got %q, %v", "ab", got, err)
	}

	stego, err = EmbedText(newCarrier(32, 32), "ab<<END>>cd")
	if err != nil {
		t.Fatal(err)
	}
	if got, err := ExtractText(stego); err != nil || got != "ab<<END>>cd" {
		t.Errorf("length framing: got %q, %v", got, err)
	}
}

func TestExtractTextErrors(t *testing.T) {
	legacy := Codec{Framing: FramingDelimiter}
	_, err := legacy.ExtractText(blackCarrier(16, 16))
	if !errors.Is(err, ErrDelimiterNotFound) {
		t.Errorf("clean carrier: expected ErrDelimiterNotFound, got %v", err)
	}

	// All-ones LSBs decode as a length prefix of 0xFFFFFFFF, which no
	// carrier of this size can hold.
	noisy := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range noisy.Pix {
		noisy.Pix[i] = 0xFF
	}
	if _, err := ExtractText(noisy); !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("implausible length: expected ErrHeaderNotFound, got %v", err)
	}

	// A carrier too small to even hold the length prefix.
	if _, err := ExtractText(blackCarrier(2, 1)); !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("tiny carrier: expected ErrHeaderNotFound, got %v", err)
	}

	// An all-zero LSB stream decodes as a zero-length payload; the
	// length scheme cannot tell that apart from an embedded empty string.
	got, err := ExtractText(blackCarrier(16, 16))
	if err != nil || got != "" {
		t.Errorf("zero stream: expected empty text, got %q, %v", got, err)
	}
}

func TestEmbedDoesNotMutateCarrier(t *testing.T) {
	cover := newCarrier(32, 32)
	before := append([]byte(nil), cover.Pix...)

	if _, err := EmbedText(cover, "do not touch the original"); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, cover.Pix) {
		t.Error("EmbedText mutated the carrier")
	}

	// A failed embed must leave the carrier untouched too.
	small := newCarrier(4, 4)
	before = append([]byte(nil), small.Pix...)
	if _, err := EmbedText(small, strings.Repeat("x", 100)); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if !bytes.Equal(before, small.Pix) {
		t.Error("failed embed mutated the carrier")
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	stego, err := EmbedText(newCarrier(32, 32), "same answer every time")
	if err != nil {
		t.Fatal(err)
	}
	first, err := ExtractText(stego)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ExtractText(stego)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("two extractions disagree: %q vs %q", first, second)
	}
}

func TestEmbedChangesOnlyMaskedChannels(t *testing.T) {
	c := Codec{Mask: Green}
	cover := newCarrier(16, 16)
	stego, err := c.EmbedText(cover, "green only")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(cover.Pix); i += 4 {
		if cover.Pix[i] != stego.Pix[i] || cover.Pix[i+2] != stego.Pix[i+2] {
			t.Fatalf("pixel %d: red or blue channel changed under a green-only mask", i/4)
		}
		if d := cover.Pix[i+1] ^ stego.Pix[i+1]; d > 1 {
			t.Fatalf("pixel %d: green channel changed by more than the LSB", i/4)
		}
	}
}
