package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/anzen-go/anzen/tools/disc"
	"github.com/anzen-go/anzen/tools/monitor"
	"github.com/anzen-go/anzen/tools/run"
	"github.com/anzen-go/anzen/tools/texture"
)

const usageString = `dcgo is a tool for development of Dreamcast programs.

Usage:

	%s <command> [arguments]

The commands are:

	run      execute a program in an emulator and report test results
	texture  convert images to PVR textures
	disc     build ISO9660 disc images
	monitor  print diagnostics received on a serial port

Settings like DCGO_EMULATOR and DCGO_SERIAL are read from the environment and
a .env file in the current directory.
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalln(".env:", err)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "run":
		run.Main(flag.Args())
	case "texture":
		texture.Main(flag.Args())
	case "disc":
		disc.Main(flag.Args())
	case "monitor":
		monitor.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
