package pvr

import (
	"sync"
	"sync/atomic"

	"github.com/anzen-go/anzen/holly"
)

// accelerator gates access to the TA. The hardware is brought up once, on the
// first successful CreateContext, and can then be acquired and released any
// number of times.
var accelerator struct {
	setup  sync.Once
	holder atomic.Pointer[Context]
}

// Context represents ownership of the tile accelerator. Only one Context can be
// valid at a time. It's not safe for concurrent use, the goroutine that
// created it should do all rendering.
type Context struct {
	valid    atomic.Bool
	transfer TransferProtocol

	frame   uint64
	inFrame bool
}

type Option func(*options)

type options struct {
	transfer TransferProtocol
}

// WithTransfer makes the context use t instead of a new SQTransfer. The context
// takes ownership of t.
func WithTransfer(t TransferProtocol) Option {
	return func(o *options) {
		o.transfer = t
	}
}

// CreateContext acquires the tile accelerator. It fails with ErrAlreadyInUse if
// another Context is still valid. The hardware is initialized on first use.
func CreateContext(opts ...Option) (*Context, error) {
	ctx := &Context{}
	if !accelerator.holder.CompareAndSwap(nil, ctx) {
		return nil, ErrAlreadyInUse
	}
	accelerator.setup.Do(taSetup)

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.transfer == nil {
		o.transfer = NewSQTransfer(holly.DefaultPort(), DefaultBatchSize)
	}
	ctx.transfer = o.transfer
	ctx.valid.Store(true)

	logger().Debug("pvr: context acquired")
	return ctx, nil
}

// DestroyContext releases the accelerator held by ctx and invalidates it. It's
// safe to call more than once and on a nil context.
func DestroyContext(ctx *Context) {
	if ctx == nil {
		return
	}
	if ctx.valid.Swap(false) {
		logger().Debug("pvr: context released", "frames", ctx.frame)
	}
	// Only release the accelerator if ctx is still the holder, a stale
	// context must never free a newer one's hold.
	accelerator.holder.CompareAndSwap(ctx, nil)
}

// Destroy is shorthand for DestroyContext(ctx).
func (ctx *Context) Destroy() { DestroyContext(ctx) }

// Valid reports whether ctx still owns the accelerator.
func (ctx *Context) Valid() bool { return ctx != nil && ctx.valid.Load() }

// Transfer returns the transfer protocol owned by ctx.
func (ctx *Context) Transfer() TransferProtocol { return ctx.transfer }

// Frame returns the number of frames ended with ctx.
func (ctx *Context) Frame() uint64 { return ctx.frame }

// BeginFrame starts recording a new frame.
func (ctx *Context) BeginFrame() error {
	if !ctx.Valid() {
		return ErrInvalidContext
	}
	if ctx.inFrame {
		return ErrFrameInProgress
	}
	taBeginFrame()
	ctx.inFrame = true
	return nil
}

// EndFrame sends all queued parameters and hands the frame to the renderer.
func (ctx *Context) EndFrame() error {
	if !ctx.Valid() {
		return ErrInvalidContext
	}
	if !ctx.inFrame {
		return ErrNoFrame
	}
	if err := ctx.transfer.Send(); err != nil {
		return err
	}
	taFinishFrame()
	ctx.inFrame = false
	ctx.frame++
	return nil
}

// CreatePass starts a new render pass on ctx.
func (ctx *Context) CreatePass() (*Pass, error) {
	if !ctx.Valid() {
		return nil, ErrInvalidContext
	}
	return &Pass{ctx: ctx}, nil
}
