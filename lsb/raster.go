package lsb

import (
	"image"
	"image/draw"
)

// cloneCover copies cover into a fresh zero-origin RGBA image. All raster
// walks below assume a zero origin, and the copy is what keeps the
// caller's carrier immutable.
func cloneCover(cover *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cover.Rect.Dx(), cover.Rect.Dy()))
	draw.Draw(dst, dst.Bounds(), cover, cover.Rect.Min, draw.Src)
	return dst
}

// normalized returns img itself when it already sits at the zero origin,
// otherwise a repositioned copy. Extraction never mutates, so sharing the
// pixel buffer is fine.
func normalized(img *image.RGBA) *image.RGBA {
	if img.Rect.Min == (image.Point{}) {
		return img
	}
	return cloneCover(img)
}

// embedBits substitutes the least significant bit of each masked channel
// with the next payload bit, walking pixels in row-major order and
// stopping as soon as the bits are exhausted. Remaining pixels are left
// untouched. The caller has already verified capacity.
func embedBits(img *image.RGBA, bits []uint8, mask ChannelMask) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	idx := 0
	for y := 0; y < h && idx < len(bits); y++ {
		for x := 0; x < w && idx < len(bits); x++ {
			off := img.PixOffset(x, y)
			for c := 0; c < 3 && idx < len(bits); c++ {
				if mask&(Red<<uint(c)) == 0 {
					continue
				}
				img.Pix[off+c] = img.Pix[off+c]&^1 | bits[idx]
				idx++
			}
		}
	}
}

// scanBytes replays the embedder's walk, reassembling LSBs into bytes and
// handing each completed byte to visit. Returning true from visit stops
// the scan early; scanBytes reports whether it was stopped.
func scanBytes(img *image.RGBA, mask ChannelMask, visit func(b byte) bool) bool {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	var cur byte
	nbits := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := img.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				if mask&(Red<<uint(c)) == 0 {
					continue
				}
				cur = cur<<1 | img.Pix[off+c]&1
				nbits++
				if nbits == 8 {
					if visit(cur) {
						return true
					}
					cur, nbits = 0, 0
				}
			}
		}
	}
	return false
}

// extractAll decodes every complete byte the carrier holds.
func extractAll(img *image.RGBA, mask ChannelMask) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 0, w*h*mask.count()/8)
	scanBytes(img, mask, func(b byte) bool {
		out = append(out, b)
		return false
	})
	return out
}

// extractLimit decodes at most n leading bytes.
func extractLimit(img *image.RGBA, mask ChannelMask, n int) []byte {
	out := make([]byte, 0, n)
	scanBytes(img, mask, func(b byte) bool {
		out = append(out, b)
		return len(out) >= n
	})
	return out
}
