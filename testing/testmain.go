// Package testing provides utilities for writing tests that also run on the
// console.
package testing

import (
	"os"
	"testing"

	"github.com/anzen-go/anzen/drivers/serial"
)

// TestMain should be used as TestMain for all packages of this module. On the
// console it redirects test output to the serial port and reports the result
// as a test packet, on the host it just runs the tests.
func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown(code)
	os.Exit(code)
}

// result is the packet that tells dcgo run how the test binary exited.
func result(code int) serial.Packet {
	if code != 0 {
		return serial.Packet{Kind: serial.KindTest, Payload: []byte("FAIL")}
	}
	return serial.Packet{Kind: serial.KindTest, Payload: []byte("PASS")}
}
