//go:build dreamcast

package testing

import (
	"io"
	"os"
	"sync"

	"github.com/anzen-go/anzen/drivers/serial"
)

var drained sync.WaitGroup

func setup() {
	serial.Init(serial.DefaultBaud)

	// Redirect stdout and stderr to the serial port
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	os.Stdout, os.Stderr = w, w
	drained.Add(1)
	go func() {
		defer drained.Done()
		io.Copy(serial.Writer, r)
	}()

	// TODO find a way to pass these from the 'go test' command
	os.Args = append(os.Args, "-test.v")
	os.Args = append(os.Args, "-test.short")
}

func teardown(code int) {
	os.Stdout.Close()
	drained.Wait()
	serial.WritePacket(serial.Writer, result(code))
}
