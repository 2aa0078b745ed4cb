package texture

import "image/color"

// 16 bit colors, stored little endian.
type (
	colorARGB1555 uint16
	colorRGB565   uint16
	colorARGB4444 uint16
)

func (c colorARGB1555) RGBA() (r, g, b, a uint32) {
	r = expand(uint32(c>>10)&0x1f, 5)
	g = expand(uint32(c>>5)&0x1f, 5)
	b = expand(uint32(c)&0x1f, 5)
	a = uint32(c>>15) * 0xffff
	return premultiply(r, g, b, a)
}

func (c colorRGB565) RGBA() (r, g, b, a uint32) {
	r = expand(uint32(c>>11)&0x1f, 5)
	g = expand(uint32(c>>5)&0x3f, 6)
	b = expand(uint32(c)&0x1f, 5)
	return r, g, b, 0xffff
}

func (c colorARGB4444) RGBA() (r, g, b, a uint32) {
	a = expand(uint32(c>>12)&0xf, 4)
	r = expand(uint32(c>>8)&0xf, 4)
	g = expand(uint32(c>>4)&0xf, 4)
	b = expand(uint32(c)&0xf, 4)
	return premultiply(r, g, b, a)
}

// expand scales a value of n bits to 16 bits by bit replication.
func expand(v uint32, n uint) uint32 {
	v <<= 16 - n
	for s := n; s < 16; s += n {
		v |= v >> s
	}
	return v & 0xffff
}

func premultiply(r, g, b, a uint32) (uint32, uint32, uint32, uint32) {
	return r * a / 0xffff, g * a / 0xffff, b * a / 0xffff, a
}

// unpremultiply returns 16 bit non-premultiplied components of c.
func unpremultiply(c color.Color) (r, g, b, a uint32) {
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return uint32(nc.R), uint32(nc.G), uint32(nc.B), uint32(nc.A)
}

var (
	ARGB1555Model color.Model = color.ModelFunc(argb1555Model)
	RGB565Model   color.Model = color.ModelFunc(rgb565Model)
	ARGB4444Model color.Model = color.ModelFunc(argb4444Model)
)

func argb1555Model(c color.Color) color.Color {
	if c, ok := c.(colorARGB1555); ok {
		return c
	}
	r, g, b, a := unpremultiply(c)
	return colorARGB1555(a>>15<<15 | r>>11<<10 | g>>11<<5 | b>>11)
}

func rgb565Model(c color.Color) color.Color {
	if c, ok := c.(colorRGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return colorRGB565(r>>11<<11 | g>>10<<5 | b>>11)
}

func argb4444Model(c color.Color) color.Color {
	if c, ok := c.(colorARGB4444); ok {
		return c
	}
	r, g, b, a := unpremultiply(c)
	return colorARGB4444(a>>12<<12 | r>>12<<8 | g>>12<<4 | b>>12)
}
