//go:build !dreamcast

package cdfs

import "os"

// The default driver reads the image named by $ANZEN_DISC.
func defaultDriver() Driver {
	return NewImageDriver(os.Getenv("ANZEN_DISC"))
}
