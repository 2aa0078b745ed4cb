// Package pvr drives the PowerVR tile accelerator (TA) inside Holly.
//
// The accelerator is a single hardware resource. It's owned through a Context,
// of which at most one can be live at a time:
//
//	ctx, err := pvr.CreateContext()
//	if err != nil {
//		return err // pvr.ErrAlreadyInUse
//	}
//	defer ctx.Destroy()
//
// Geometry is submitted frame by frame. Within a frame, any number of passes
// can be created. A pass accepts one display list per list type, each of which
// streams vertices to the TA and is submitted exactly once:
//
//	ctx.BeginFrame()
//	pass, _ := ctx.CreatePass()
//	op, _ := pass.List(pvr.ListOpaque)
//	op.DrawVertex(pvr.Vertex{X: 320, Y: 100, Z: 1})
//	op.DrawVertex(pvr.Vertex{X: 480, Y: 380, Z: 1})
//	op.EndStrip(pvr.Vertex{X: 160, Y: 380, Z: 1})
//	op.Submit()
//	pass.Submit()
//	ctx.EndFrame()
//
// Every list type moves from closed to open to submitted and never back.
// Operations on a destroyed context fail with ErrInvalidContext instead of
// touching the hardware.
//
// How parameters reach the TA is up to the context's TransferProtocol. The
// default streams them through the SH4 store queues, see SQTransfer.
package pvr
