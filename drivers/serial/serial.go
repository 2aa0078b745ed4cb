// Package serial provides the console's serial port, which is mainly used for
// diagnostics over a coders cable.
//
// Characters written with PutChar are buffered by the support library and
// only guaranteed to be sent after Flush. WriteString and Writer flush on their
// own.
package serial

import "io"

// Driver is implemented by the support library.
type Driver interface {
	Init(baud int)
	PutChar(c byte)
	Flush()
	WriteString(s string)
}

// DefaultBaud is the rate most coders cables and dcload expect.
const DefaultBaud = 57600

var driver Driver = defaultDriver()

// SetDriver replaces the port's driver and returns the previous one.
func SetDriver(d Driver) (old Driver) {
	old, driver = driver, d
	return old
}

// Init configures the port for baud bits per second.
func Init(baud int) { driver.Init(baud) }

// PutChar queues c for sending. Call Flush to make sure it's sent.
func PutChar(c byte) { driver.PutChar(c) }

// Flush sends all queued characters.
func Flush() { driver.Flush() }

// WriteString sends s and flushes.
func WriteString(s string) { driver.WriteString(s) }

type writer struct{}

// Writer writes to the serial port. Every write is flushed before returning.
var Writer io.Writer = writer{}

func (writer) Write(p []byte) (n int, err error) {
	for _, c := range p {
		driver.PutChar(c)
	}
	driver.Flush()
	return len(p), nil
}
