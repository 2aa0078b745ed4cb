package run

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/buildkite/shellwords"

	"github.com/anzen-go/anzen/drivers/serial"
)

const usageString = `Run a Dreamcast program in an emulator.

The program's output is scanned for test results and framed diagnostics.
The exit code is 1 if a test failed or the program panicked.

Usage: %s [flags] <elf|cdi|iso>

`

var (
	flags = flag.NewFlagSet("run", flag.ExitOnError)

	emulator = flags.String("emulator", os.Getenv("DCGO_EMULATOR"), "emulator command, the program is appended as last argument")
	usePty   = flags.Bool("pty", false, "run the emulator on a pseudo terminal")
	timeout  = flags.Duration("timeout", 0, "kill the emulator after this duration")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "run")
	flags.PrintDefaults()
}

// process is an emulator process whose output can be read.
type process interface {
	Start() error
	Wait() error
	Output() io.ReadCloser
	Kill() error
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}
	if *emulator == "" {
		log.Fatalln("no emulator set, use -emulator or DCGO_EMULATOR")
	}

	cmdline, err := shellwords.Split(*emulator)
	if err != nil {
		log.Fatalln("run:", err)
	}
	cmdline = append(cmdline, flags.Arg(0))

	var proc process
	if *usePty {
		proc, err = newPtyProcess(cmdline)
	} else {
		proc, err = newPipeProcess(cmdline)
	}
	if err != nil {
		log.Fatalln("run:", err)
	}
	os.Exit(runEmulator(proc))
}

func runEmulator(proc process) int {
	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	defer signal.Stop(sigintr)

	if err := proc.Start(); err != nil {
		log.Fatalln("start command:", err)
	}

	stop := func() {
		proc.Output().Close()
		if err := proc.Kill(); err != nil {
			log.Println(err)
		}
	}
	go func() {
		<-sigintr
		stop()
	}()
	if *timeout > 0 {
		t := time.AfterFunc(*timeout, func() {
			log.Println("timeout")
			stop()
		})
		defer t.Stop()
	}

	code := scan(proc.Output(), func() {
		go func() {
			// give panic() time to print the stacktrace
			time.Sleep(500 * time.Millisecond)
			stop()
		}()
	})
	proc.Wait()
	return code
}

// scan prints everything read from r and calls exit once the program reported
// its result. It returns the exit code for the reported result. A test packet
// overrides a result taken from the program's text output.
func scan(r io.Reader, exit func()) int {
	br := bufio.NewReader(r)
	exiting := false
	code := 0
	for {
		p, err := serial.ReadPacket(br)
		if err == serial.ErrChecksum {
			log.Println("corrupted packet")
			continue
		} else if err != nil {
			break
		}

		line := strings.TrimRight(string(p.Payload), "\r\n")
		switch p.Kind {
		case serial.KindLog:
			log.Println("log:", line)
			continue
		case serial.KindTest:
			code = 0
			if line != "PASS" {
				code = 1
			}
			if !exiting {
				exiting = true
				exit()
			}
			continue
		default:
			log.Println(line)
		}
		if exiting {
			continue
		}

		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
			fallthrough
		case line == "FAIL":
			code = 1
			fallthrough
		case line == "PASS":
			exiting = true
			exit()
		}
	}
	return code
}
