package texture

import (
	"compress/zlib"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

type header struct {
	Format        Format
	Width, Height uint16
	PaletteSize   uint16
}

// Load reads a texture written by Store.
func Load(r io.Reader) (tex *Texture, err error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var hdr header
	err = binary.Read(zr, binary.LittleEndian, &hdr)
	if err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, int(hdr.Width), int(hdr.Height))
	switch hdr.Format {
	case ARGB1555, RGB565, ARGB4444:
		tex = New(hdr.Format, rect)
	case PAL8:
		if hdr.PaletteSize > 256 {
			return nil, errors.New("texture: palette too large")
		}
		entries := make([]uint32, hdr.PaletteSize)
		err = binary.Read(zr, binary.LittleEndian, entries)
		if err != nil {
			return nil, err
		}
		palette := make(color.Palette, len(entries))
		for i, e := range entries {
			palette[i] = color.NRGBA{uint8(e >> 16), uint8(e >> 8), uint8(e), uint8(e >> 24)}
		}
		tex = NewPAL8(rect, palette)
	default:
		return nil, ErrFormat
	}

	_, err = io.ReadFull(zr, tex.pix)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

// Store writes the texture zlib compressed to w.
func (t *Texture) Store(w io.Writer) error {
	if t.rect.Dx() > 0xffff || t.rect.Dy() > 0xffff {
		return ErrSize
	}

	var hdr = header{
		Format:      t.format,
		Width:       uint16(t.rect.Dx()),
		Height:      uint16(t.rect.Dy()),
		PaletteSize: uint16(len(t.palette)),
	}

	zw := zlib.NewWriter(w)
	err := binary.Write(zw, binary.LittleEndian, hdr)
	if err != nil {
		return err
	}

	if t.format == PAL8 {
		err = binary.Write(zw, binary.LittleEndian, t.PaletteEntries())
		if err != nil {
			return err
		}
	}

	_, err = zw.Write(t.pix)
	if err != nil {
		return err
	}
	return zw.Close()
}
