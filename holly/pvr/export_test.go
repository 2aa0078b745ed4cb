//go:build !dreamcast

package pvr

func TASetups() int32 { return taSetups.Load() }
func TAFrames() int32 { return taFrames.Load() }
