//go:build dreamcast

package pvr

/*
extern void dc_setup_ta(void);
extern void ta_begin_frame(void);
extern void ta_finish_frame(void);

static inline void sq_flush(void *addr) {
	__asm__ __volatile__("pref @%0" : : "r"(addr) : "memory");
}
*/
import "C"

import (
	"unsafe"

	"github.com/anzen-go/anzen/holly"
)

func taSetup()       { C.dc_setup_ta() }
func taBeginFrame()  { C.ta_begin_frame() }
func taFinishFrame() { C.ta_finish_frame() }

func sqFlush(addr holly.Addr) { C.sq_flush(unsafe.Pointer(addr)) }
