package lsb

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// The image-in-image variant splits the carrier into two regions. The
// first headerBandRows(width) rows are reserved for the "{w}x{h}<<DIM>>"
// header at 1 bit per channel; the secret's pixels follow below at 4 bits
// per channel, upper nibble of each secret channel in the lower nibble of
// the carrier channel. Both regions always use all three channels so the
// extractor needs nothing beyond the stego image itself.

// EmbedImage hides secret inside a copy of cover. A secret larger than
// the payload region is downscaled to fit, preserving aspect ratio.
// Fails with ErrCapacityExceeded when the carrier has no payload rows
// below the header band.
func (c Codec) EmbedImage(cover, secret *image.RGBA) (*image.RGBA, error) {
	cw, ch := cover.Rect.Dx(), cover.Rect.Dy()
	startY := headerBandRows(cw)
	if startY >= ch {
		return nil, fmt.Errorf("%w: %dx%d carrier has no rows below the %d-row header band",
			ErrCapacityExceeded, cw, ch, startY)
	}
	sec := fitSecret(normalized(secret), cw, ch-startY)
	sw, sh := sec.Rect.Dx(), sec.Rect.Dy()
	if sw < 1 || sh < 1 {
		return nil, fmt.Errorf("%w: secret image is empty", ErrCapacityExceeded)
	}

	stego := cloneCover(cover)
	embedBits(stego, bytesToBits(frameDim(sw, sh)), AllChannels)

	for sy := 0; sy < sh; sy++ {
		cy := sy + startY
		if cy >= ch {
			break
		}
		for sx := 0; sx < sw; sx++ {
			if sx >= cw {
				break
			}
			so := sec.PixOffset(sx, sy)
			co := stego.PixOffset(sx, cy)
			for i := 0; i < 3; i++ {
				stego.Pix[co+i] = stego.Pix[co+i]&0xF0 | sec.Pix[so+i]>>4
			}
		}
	}
	return stego, nil
}

// ExtractImage reads the dimension header from the reserved band, then
// rebuilds the secret from the payload region's low nibbles. Each channel
// comes back as its nibble duplicated into both halves of the byte, an
// inherently lossy 16-level reconstruction. Fails with ErrHeaderNotFound
// when no dimension header is present in the band.
func (c Codec) ExtractImage(stego *image.RGBA) (*image.RGBA, error) {
	img := normalized(stego)
	cw, ch := img.Rect.Dx(), img.Rect.Dy()
	startY := headerBandRows(cw)

	band := extractLimit(img, AllChannels, dimHeaderMaxBytes)
	sw, sh, err := parseDim(band)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, sw, sh))
	for sy := 0; sy < sh; sy++ {
		cy := sy + startY
		for sx := 0; sx < sw; sx++ {
			oo := out.PixOffset(sx, sy)
			if sx < cw && cy < ch {
				so := img.PixOffset(sx, cy)
				for i := 0; i < 3; i++ {
					nib := img.Pix[so+i] & 0x0F
					out.Pix[oo+i] = nib<<4 | nib
				}
			}
			// Positions outside the carrier stay zero (black).
			out.Pix[oo+3] = 0xFF
		}
	}
	return out, nil
}

// fitSecret downscales secret so it fits within maxW×maxH, preserving
// aspect ratio. Dimensions are additionally clamped to maxSecretDim so
// the header stays within its fixed band.
func fitSecret(secret *image.RGBA, maxW, maxH int) *image.RGBA {
	if maxW > maxSecretDim {
		maxW = maxSecretDim
	}
	if maxH > maxSecretDim {
		maxH = maxSecretDim
	}
	sw, sh := secret.Rect.Dx(), secret.Rect.Dy()
	if sw <= maxW && sh <= maxH {
		return secret
	}
	scale := float64(maxW) / float64(sw)
	if s := float64(maxH) / float64(sh); s < scale {
		scale = s
	}
	nw, nh := int(float64(sw)*scale), int(float64(sh)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), secret, secret.Bounds(), draw.Src, nil)
	return dst
}
