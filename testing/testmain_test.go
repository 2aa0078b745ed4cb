package testing

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/anzen-go/anzen/drivers/serial"
)

func TestResult(t *testing.T) {
	for code, want := range map[int]string{0: "PASS", 1: "FAIL", 2: "FAIL"} {
		var buf bytes.Buffer
		buf.WriteString("--- FAIL: TestX\n")
		if err := serial.WritePacket(&buf, result(code)); err != nil {
			t.Fatal(err)
		}
		r := bufio.NewReader(&buf)
		if p, err := serial.ReadPacket(r); err != nil || p.Kind != serial.KindText {
			t.Fatalf("text line: %v, %v", p, err)
		}
		p, err := serial.ReadPacket(r)
		if err != nil {
			t.Fatal(err)
		}
		if p.Kind != serial.KindTest || string(p.Payload) != want {
			t.Errorf("code %d: got kind %d %q, want %q", code, p.Kind, p.Payload, want)
		}
	}
}
