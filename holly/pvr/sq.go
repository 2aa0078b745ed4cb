package pvr

import "github.com/anzen-go/anzen/holly"

// TASQAddr is where the store queues write through to the TA FIFO.
const TASQAddr = holly.StoreQueues | holly.TAFIFO&0x03ff_ffe0

// DefaultBatchSize is the number of blocks SQTransfer buffers before it sends
// them on its own.
const DefaultBatchSize = 64

// SQTransfer is the default TransferProtocol. It batches blocks and streams
// them through the SH4's two store queues, which are flushed to the TA FIFO in
// 32-byte bursts. Writing one queue while the other one drains keeps the bus
// busy.
type SQTransfer struct {
	port  holly.Port
	batch []Block
	sq    int

	sent int
}

// NewSQTransfer returns a store queue transfer using port. It points both
// store queues at the TA FIFO, so it must only be created while holding the
// accelerator. A batch size below one means DefaultBatchSize.
func NewSQTransfer(port holly.Port, batchSize int) *SQTransfer {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	area := uint32(holly.TAFIFO>>26) << 2 & 0x1c
	holly.PortR32[uint32](port, qacr0.Addr()).Store(area)
	holly.PortR32[uint32](port, qacr1.Addr()).Store(area)
	return &SQTransfer{port: port, batch: make([]Block, 0, batchSize)}
}

func (p *SQTransfer) Queue(blocks ...Block) error {
	for len(blocks) > 0 {
		n := min(len(blocks), cap(p.batch)-len(p.batch))
		p.batch = append(p.batch, blocks[:n]...)
		blocks = blocks[n:]
		if len(p.batch) == cap(p.batch) {
			if err := p.Send(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *SQTransfer) Send() error {
	for i := range p.batch {
		addr := TASQAddr + holly.Addr(p.sq)<<5
		for j, w := range p.batch[i] {
			p.port.WriteWord(addr+holly.Addr(j)<<2, w)
		}
		sqFlush(addr)
		p.sq ^= 1
	}
	p.sent += len(p.batch)
	p.batch = p.batch[:0]
	return nil
}

// Sent returns the number of blocks flushed to the TA so far.
func (p *SQTransfer) Sent() int { return p.sent }

// Pending returns the number of queued blocks not sent yet.
func (p *SQTransfer) Pending() int { return len(p.batch) }
