package texture

import "math/bits"

// twiddleIndex returns the index of texel (x, y) in a twiddled texture of
// w×h texels, both powers of two. Bits of x and y are interleaved, starting
// with y in bit 0. The remaining high bits of the longer side are appended.
func twiddleIndex(x, y, w, h int) int {
	n := bits.TrailingZeros(uint(min(w, h)))
	idx := 0
	for i := range n {
		idx |= (y>>i&1)<<(2*i) | (x>>i&1)<<(2*i+1)
	}
	if w > h {
		idx |= x >> n << (2 * n)
	} else if h > w {
		idx |= y >> n << (2 * n)
	}
	return idx
}

// Twiddled returns the texture's pixels in twiddled order. The texture's
// dimensions must be powers of two.
func (t *Texture) Twiddled() ([]byte, error) {
	if _, err := t.TSPSize(); err != nil {
		return nil, err
	}
	w, h := t.rect.Dx(), t.rect.Dy()
	bpp := t.format.BPP() / 8
	out := make([]byte, len(t.pix))
	for y := range h {
		for x := range w {
			src := y*t.stride + x*bpp
			dst := twiddleIndex(x, y, w, h) * bpp
			copy(out[dst:dst+bpp], t.pix[src:src+bpp])
		}
	}
	return out, nil
}
