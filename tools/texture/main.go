package texture

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"

	"github.com/anzen-go/anzen/holly/pvr/texture"
)

var (
	flags = flag.NewFlagSet("texture", flag.ExitOnError)

	format  = flags.String("format", "ARGB1555", "ARGB1555 | RGB565 | ARGB4444 | PAL8")
	dither  = flags.Bool("dither", false, "enable Floyd-Steinberg error diffusion")
	palette = flags.Int("palette", 256, "number of colors in PAL8 format")
	pow2    = flags.Bool("pow2", true, "scale the image to power of two dimensions")

	imagefile string
)

const usageString = `Image to PVR texture converter.

Usage: %s [flags] <image>

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "texture")
	flags.PrintDefaults()
}

// nextPow2 returns the smallest power of two >= n, within the texture size
// limits.
func nextPow2(n int) int {
	n = min(max(n, 8), 1024)
	return 1 << bits.Len(uint(n-1))
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		imagefile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	r, err := os.Open(imagefile)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	src, _, err := image.Decode(r)
	if err != nil {
		log.Fatalln(err)
	}

	if *pow2 {
		b := src.Bounds()
		size := image.Rect(0, 0, nextPow2(b.Dx()), nextPow2(b.Dy()))
		if size != b.Sub(b.Min) {
			scaled := image.NewNRGBA(size)
			draw.CatmullRom.Scale(scaled, size, src, b, draw.Src, nil)
			src = scaled
		}
	}

	var dst *texture.Texture
	bounds := src.Bounds().Sub(src.Bounds().Min)
	switch *format {
	case "ARGB1555":
		dst = texture.New(texture.ARGB1555, bounds)
	case "RGB565":
		dst = texture.New(texture.RGB565, bounds)
	case "ARGB4444":
		dst = texture.New(texture.ARGB4444, bounds)
	case "PAL8":
		q := quantize.MedianCutQuantizer{}
		p := q.Quantize(make(color.Palette, 0, min(*palette, 256)), src)
		dst = texture.NewPAL8(bounds, p)
	default:
		log.Fatal("unsupported format:", *format)
	}

	var d draw.Drawer = draw.Src
	if *dither {
		d = draw.FloydSteinberg
	}
	d.Draw(dst, dst.Bounds(), src, src.Bounds().Min)

	outfile := strings.TrimSuffix(imagefile, filepath.Ext(imagefile))
	outfile += "." + *format
	w, err := os.Create(outfile)
	if err != nil {
		log.Fatalln(err)
	}
	defer w.Close()

	err = dst.Store(w)
	if err != nil {
		log.Fatalln(err)
	}
}
