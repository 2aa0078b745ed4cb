//go:build !dreamcast

package timer

import "time"

type defaultDriver struct{}

func (defaultDriver) Usleep(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
