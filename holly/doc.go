// Package holly provides the hardware abstraction layer for the Dreamcast's
// Holly system ASIC and the parts of the SH4 address space it's mapped into.
//
// All hardware access goes through a Port of 32-bit words. When built with the
// dreamcast tag the default port calls into the native support library, on any
// other target it's a simulated memory so that higher layers can be tested on
// the host. Nothing in this package validates addresses: reading or writing the
// wrong one is undefined behaviour on real hardware.
package holly
