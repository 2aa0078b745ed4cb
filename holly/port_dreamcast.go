//go:build dreamcast

package holly

/*
#include <stdint.h>

extern void write_memory(uint32_t *address, uint32_t data);
extern uint32_t read_memory(uint32_t *address);
*/
import "C"

import "unsafe"

// nativePort forwards word accesses to the support library, which performs
// them as volatile loads and stores.
type nativePort struct{}

func defaultPort() Port { return nativePort{} }

func (nativePort) ReadWord(addr Addr) uint32 {
	return uint32(C.read_memory((*C.uint32_t)(unsafe.Pointer(addr))))
}

func (nativePort) WriteWord(addr Addr, v uint32) {
	C.write_memory((*C.uint32_t)(unsafe.Pointer(addr)), C.uint32_t(v))
}
