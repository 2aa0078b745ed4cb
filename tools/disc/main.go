package disc

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/anzen-go/anzen/drivers/cdfs"
)

const usageString = `Directory to ISO9660 disc image converter.

File names are folded to upper case ASCII. The image can be used with the
emulator or as ANZEN_DISC when running on the host.

Usage: %s [flags] <dir>

`

var (
	flags = flag.NewFlagSet("disc", flag.ExitOnError)

	output = flags.String("o", "", "output file, defaults to <dir>.iso")
	label  = flags.String("label", "", "volume label, defaults to the folded directory name")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "disc")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}
	dir := filepath.Clean(flags.Arg(0))

	if *output == "" {
		*output = dir + ".iso"
	}
	if *label == "" {
		*label = cdfs.FoldName(filepath.Base(dir))
	}
	if len(*label) > 32 {
		log.Fatalln("label too long:", *label)
	}

	if info, err := os.Stat(dir); err != nil {
		log.Fatalln(err)
	} else if !info.IsDir() {
		log.Fatalln("not a directory:", dir)
	}

	err := cdfs.CreateImage(*output, strings.ToUpper(*label), os.DirFS(dir))
	if err != nil {
		log.Fatalln("create image:", err)
	}
}
