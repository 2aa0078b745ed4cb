//go:build dreamcast

package timer

/*
#include <stdint.h>

extern void usleep(uint32_t us);
*/
import "C"

type defaultDriver struct{}

func (defaultDriver) Usleep(us uint32) { C.usleep(C.uint32_t(us)) }
