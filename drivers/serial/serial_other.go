//go:build !dreamcast

package serial

import (
	"bufio"
	"io"
	"os"
)

// hostDriver stands in for the serial port when running on a development
// machine. Output goes to stderr.
type hostDriver struct {
	w *bufio.Writer
}

func defaultDriver() Driver { return NewHostDriver(os.Stderr) }

// NewHostDriver returns a driver buffering output to w.
func NewHostDriver(w io.Writer) Driver {
	return &hostDriver{w: bufio.NewWriter(w)}
}

func (d *hostDriver) Init(baud int)  {}
func (d *hostDriver) PutChar(c byte) { d.w.WriteByte(c) }
func (d *hostDriver) Flush()         { d.w.Flush() }

func (d *hostDriver) WriteString(s string) {
	d.w.WriteString(s)
	d.w.Flush()
}
