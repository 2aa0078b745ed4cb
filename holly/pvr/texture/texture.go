// Package texture provides images in the pixel formats the PVR samples from.
//
// A Texture implements draw.Image, so anything from the image packages can
// be drawn into it. Pixels are stored in scan order, Twiddled returns them in
// the order the PVR expects for twiddled textures.
package texture

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math/bits"
)

// Format is a texture pixel format. The values match the PVR's pixel format
// field.
type Format uint8

const (
	ARGB1555 Format = 0
	RGB565   Format = 1
	ARGB4444 Format = 2
	PAL8     Format = 6
)

func (f Format) String() string {
	switch f {
	case ARGB1555:
		return "ARGB1555"
	case RGB565:
		return "RGB565"
	case ARGB4444:
		return "ARGB4444"
	case PAL8:
		return "PAL8"
	}
	return "invalid"
}

// BPP returns the number of bits per pixel.
func (f Format) BPP() int {
	if f == PAL8 {
		return 8
	}
	return 16
}

// Model returns the color model of the format. PAL8 has no fixed model.
func (f Format) Model() color.Model {
	switch f {
	case ARGB1555:
		return ARGB1555Model
	case RGB565:
		return RGB565Model
	case ARGB4444:
		return ARGB4444Model
	}
	return nil
}

var (
	ErrFormat = errors.New("texture: unsupported format")
	ErrSize   = errors.New("texture: size must be a power of two between 8 and 1024")
)

type Texture struct {
	format  Format
	rect    image.Rectangle
	stride  int
	pix     []byte
	palette color.Palette
}

var _ draw.Image = (*Texture)(nil)

// New returns a texture of format f. Use NewPAL8 for paletted textures.
func New(f Format, r image.Rectangle) *Texture {
	if f.Model() == nil {
		panic(ErrFormat)
	}
	return newTexture(f, r)
}

func newTexture(f Format, r image.Rectangle) *Texture {
	stride := r.Dx() * f.BPP() / 8
	return &Texture{
		format: f,
		rect:   r,
		stride: stride,
		pix:    make([]byte, stride*r.Dy()),
	}
}

// NewPAL8 returns a paletted texture. The palette can hold up to 256 colors.
func NewPAL8(r image.Rectangle, p color.Palette) *Texture {
	tex := newTexture(PAL8, r)
	tex.palette = p[:min(len(p), 256)]
	return tex
}

// FromImage returns a texture of format f with the contents of img. For PAL8
// img must be an *image.Paletted.
func FromImage(f Format, img image.Image) (*Texture, error) {
	var tex *Texture
	if f == PAL8 {
		pimg, ok := img.(*image.Paletted)
		if !ok {
			return nil, ErrFormat
		}
		tex = NewPAL8(img.Bounds(), pimg.Palette)
	} else if f.Model() != nil {
		tex = New(f, img.Bounds())
	} else {
		return nil, ErrFormat
	}
	draw.Draw(tex, tex.rect, img, img.Bounds().Min, draw.Src)
	return tex, nil
}

func (t *Texture) Format() Format          { return t.format }
func (t *Texture) Bounds() image.Rectangle { return t.rect }
func (t *Texture) Stride() int             { return t.stride }
func (t *Texture) Pix() []byte             { return t.pix }
func (t *Texture) Palette() color.Palette  { return t.palette }

func (t *Texture) ColorModel() color.Model {
	if t.format == PAL8 {
		return t.palette
	}
	return t.format.Model()
}

func (t *Texture) PixOffset(x, y int) int {
	return (y-t.rect.Min.Y)*t.stride + (x-t.rect.Min.X)*t.format.BPP()/8
}

func (t *Texture) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(t.rect)) {
		return color.RGBA{}
	}
	i := t.PixOffset(x, y)
	if t.format == PAL8 {
		idx := int(t.pix[i])
		if idx >= len(t.palette) {
			return color.RGBA{}
		}
		return t.palette[idx]
	}
	v := uint16(t.pix[i]) | uint16(t.pix[i+1])<<8
	switch t.format {
	case ARGB1555:
		return colorARGB1555(v)
	case RGB565:
		return colorRGB565(v)
	}
	return colorARGB4444(v)
}

func (t *Texture) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(t.rect)) {
		return
	}
	i := t.PixOffset(x, y)
	if t.format == PAL8 {
		if len(t.palette) > 0 {
			t.pix[i] = uint8(t.palette.Index(c))
		}
		return
	}
	var v uint16
	switch t.format {
	case ARGB1555:
		v = uint16(argb1555Model(c).(colorARGB1555))
	case RGB565:
		v = uint16(rgb565Model(c).(colorRGB565))
	case ARGB4444:
		v = uint16(argb4444Model(c).(colorARGB4444))
	}
	t.pix[i] = uint8(v)
	t.pix[i+1] = uint8(v >> 8)
}

func sizeBits(n int) (uint32, bool) {
	if n < 8 || n > 1024 || n&(n-1) != 0 {
		return 0, false
	}
	return uint32(bits.TrailingZeros(uint(n)) - 3), true
}

// TSPSize returns the U and V size fields of the texture's TSP instruction
// word.
func (t *Texture) TSPSize() (uint32, error) {
	u, uok := sizeBits(t.rect.Dx())
	v, vok := sizeBits(t.rect.Dy())
	if !uok || !vok {
		return 0, ErrSize
	}
	return u<<3 | v, nil
}

// Texture control word fields
const (
	tcwScanOrder     = 1 << 26
	tcwFormatShift   = 27
	tcwPaletteShift  = 21
	tcwAddrMask      = 0x1fffff
	textureAddrAlign = 8
)

// ControlWord returns the texture control word for the texture stored at the
// given texture memory offset. Twiddled textures are expected to be uploaded
// with Twiddled, others with Pix. For PAL8 palette selects the 256 entry bank.
func (t *Texture) ControlWord(offset uint32, twiddled bool, palette int) uint32 {
	w := uint32(t.format)<<tcwFormatShift | offset/textureAddrAlign&tcwAddrMask
	if t.format == PAL8 {
		w |= uint32(palette&0x3) << 4 << tcwPaletteShift
	} else if !twiddled {
		w |= tcwScanOrder
	}
	return w
}

// PaletteEntries returns the palette as ARGB8888 words for the PVR's palette
// RAM.
func (t *Texture) PaletteEntries() []uint32 {
	entries := make([]uint32, len(t.palette))
	for i, c := range t.palette {
		r, g, b, a := c.RGBA()
		entries[i] = a>>8<<24 | r>>8<<16 | g>>8<<8 | b>>8
	}
	return entries
}
