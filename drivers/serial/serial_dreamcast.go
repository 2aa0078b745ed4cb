//go:build dreamcast

package serial

/*
#include <stdlib.h>

extern void serial_init(int baud);
extern void serial_putc(int c);
extern void serial_flush(void);
extern void report(const char *s);
*/
import "C"

import "unsafe"

type nativeDriver struct{}

func defaultDriver() Driver { return nativeDriver{} }

func (nativeDriver) Init(baud int)  { C.serial_init(C.int(baud)) }
func (nativeDriver) PutChar(c byte) { C.serial_putc(C.int(c)) }
func (nativeDriver) Flush()         { C.serial_flush() }

func (nativeDriver) WriteString(s string) {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	C.report(cs)
}
