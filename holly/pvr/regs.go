package pvr

import "github.com/anzen-go/anzen/holly"

// Store queue address control registers. They supply bits 28:26 of the
// external address each store queue is flushed to.
var (
	qacr0 = holly.R32[uint32](0xff00_0038)
	qacr1 = holly.R32[uint32](0xff00_003c)
)

var (
	hollyID       = holly.R32[uint32](holly.P2 | 0x005f_8000)
	hollyRevision = holly.R32[uint32](holly.P2 | 0x005f_8004)
)

// ID returns the content of Holly's ID register, 0x17fd11db on retail units.
func ID() uint32 { return hollyID.Load() }

// Revision returns Holly's chip revision.
func Revision() uint32 { return hollyRevision.Load() }
