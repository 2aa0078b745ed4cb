package pvr

import (
	"encoding/binary"

	"github.com/anzen-go/anzen/holly"
)

// DMATransfer collects parameters in a buffer and copies them to the TA FIFO
// as a whole on Send. It trades memory for fewer, larger bus transactions.
type DMATransfer struct {
	port holly.Port
	buf  []byte
}

func NewDMATransfer(port holly.Port) *DMATransfer {
	return &DMATransfer{port: port, buf: make([]byte, 0, DefaultBatchSize*32)}
}

func (p *DMATransfer) Queue(blocks ...Block) error {
	for _, b := range blocks {
		for _, w := range b {
			p.buf = binary.LittleEndian.AppendUint32(p.buf, w)
		}
	}
	return nil
}

func (p *DMATransfer) Send() error {
	holly.WriteIO(p.port, holly.TAFIFO, p.buf)
	p.buf = p.buf[:0]
	return nil
}

// Pending returns the number of bytes queued but not sent.
func (p *DMATransfer) Pending() int { return len(p.buf) }
