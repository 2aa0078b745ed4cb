package serial

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/sigurn/crc8"
)

// Diagnostic output can be framed into packets, so that a host can tell log
// records and test results apart from plain text on the same line.
//
//	sync(2) kind(1) len(2, little endian) payload(len) crc8(1)
//
// The checksum covers kind, len and payload.

var (
	ErrChecksum      = errors.New("serial: packet checksum mismatch")
	ErrPacketTooLong = errors.New("serial: packet payload too long")
)

// Packet kinds
const (
	KindText byte = iota
	KindLog
	KindTest // "PASS" or "FAIL", sent by a test binary when it exits
)

// MaxPayload is the largest payload a packet can carry.
const MaxPayload = 4096

const (
	sync0 = 0x7e
	sync1 = 'D'
)

var crcTable = crc8.MakeTable(crc8.CRC8)

type Packet struct {
	Kind    byte
	Payload []byte
}

// WritePacket frames p and writes it to w in a single call.
func WritePacket(w io.Writer, p Packet) error {
	if len(p.Payload) > MaxPayload {
		return ErrPacketTooLong
	}
	buf := make([]byte, 0, len(p.Payload)+6)
	buf = append(buf, sync0, sync1, p.Kind)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(p.Payload)))
	buf = append(buf, p.Payload...)
	buf = append(buf, crc8.Checksum(buf[2:], crcTable))
	_, err := w.Write(buf)
	return err
}

// ReadPacket reads the next packet from r. Bytes before the next sync sequence
// are skipped and returned as a KindText packet.
func ReadPacket(r *bufio.Reader) (Packet, error) {
	var text []byte
	for {
		if sync, err := r.Peek(2); err == nil && sync[0] == sync0 && sync[1] == sync1 {
			if len(text) > 0 {
				return Packet{KindText, text}, nil
			}
			r.Discard(2)
			return readFrame(r)
		}
		c, err := r.ReadByte()
		if err != nil {
			if len(text) > 0 {
				return Packet{KindText, text}, nil
			}
			return Packet{}, err
		}
		text = append(text, c)
		if c == '\n' {
			return Packet{KindText, text}, nil
		}
	}
}

func readFrame(r *bufio.Reader) (Packet, error) {
	var hdr [3]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Packet{}, err
	}
	n := int(binary.LittleEndian.Uint16(hdr[1:]))
	if n > MaxPayload {
		return Packet{}, ErrPacketTooLong
	}
	body := make([]byte, n+1)
	if _, err := io.ReadFull(r, body); err != nil {
		return Packet{}, err
	}
	if crc8.Checksum(append(hdr[:], body[:n]...), crcTable) != body[n] {
		return Packet{}, ErrChecksum
	}
	return Packet{Kind: hdr[0], Payload: body[:n]}, nil
}

type packetWriter struct {
	w    io.Writer
	kind byte
}

// NewPacketWriter returns a writer that frames every write as a packet of
// kind. Writes longer than MaxPayload are split.
func NewPacketWriter(w io.Writer, kind byte) io.Writer {
	return &packetWriter{w, kind}
}

func (pw *packetWriter) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		m := min(len(p), MaxPayload)
		if err = WritePacket(pw.w, Packet{pw.kind, p[:m]}); err != nil {
			return
		}
		n += m
		p = p[m:]
	}
	return
}
