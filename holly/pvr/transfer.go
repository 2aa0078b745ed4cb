package pvr

// TransferProtocol moves TA parameters from the CPU to the accelerator.
//
// Queue may buffer blocks, Send must push everything queued so far to the
// hardware. A Context owns its TransferProtocol exclusively and only calls it
// from the goroutine holding the context.
type TransferProtocol interface {
	Queue(blocks ...Block) error
	Send() error
}
