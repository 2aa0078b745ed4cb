// Package timer provides delays backed by the support library's timer.
package timer

import "time"

// Driver sleeps for a number of microseconds. The call blocks the calling
// thread.
type Driver interface {
	Usleep(us uint32)
}

var driver Driver = defaultDriver{}

// SetDriver replaces the driver used by Sleep and returns the previous one.
func SetDriver(d Driver) (old Driver) {
	old, driver = driver, d
	return old
}

// Sleep blocks for us microseconds.
func Sleep(us uint32) { driver.Usleep(us) }

// SleepDuration blocks for d, rounded down to microseconds. Durations
// exceeding the driver's range are split into multiple calls.
func SleepDuration(d time.Duration) {
	us := d.Microseconds()
	for us > 0 {
		n := min(us, int64(^uint32(0)))
		driver.Usleep(uint32(n))
		us -= n
	}
}
