package monitor

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	bugst "go.bug.st/serial"

	"github.com/anzen-go/anzen/drivers/serial"
)

const usageString = `Print diagnostics sent by a Dreamcast over a coders cable.

Log records are prefixed with "log:", test results with "test:".

Usage: %s [flags]

`

var (
	flags = flag.NewFlagSet("monitor", flag.ExitOnError)

	port = flags.String("port", os.Getenv("DCGO_SERIAL"), "serial port, defaults to the first one found")
	baud = flags.Int("baud", serial.DefaultBaud, "baud rate")
	list = flags.Bool("list", false, "list serial ports and exit")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "monitor")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	ports, err := bugst.GetPortsList()
	if err != nil {
		log.Fatalln("list ports:", err)
	}
	if *list {
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	if *port == "" {
		if len(ports) == 0 {
			log.Fatalln("no serial port found")
		}
		*port = ports[0]
	}

	p, err := bugst.Open(*port, &bugst.Mode{BaudRate: *baud})
	if err != nil {
		log.Fatalln(err)
	}
	defer p.Close()
	log.Printf("monitoring %s at %d baud", *port, *baud)

	if err := monitor(os.Stdout, p); err != nil && !errors.Is(err, io.EOF) {
		log.Fatalln(err)
	}
}

func monitor(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		p, err := serial.ReadPacket(br)
		if errors.Is(err, serial.ErrChecksum) {
			fmt.Fprintln(w, "corrupted packet")
			continue
		} else if err != nil {
			return err
		}
		line := strings.TrimRight(string(p.Payload), "\r\n")
		switch p.Kind {
		case serial.KindLog:
			fmt.Fprintln(w, "log:", line)
		case serial.KindTest:
			fmt.Fprintln(w, "test:", line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}
