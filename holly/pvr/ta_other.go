//go:build !dreamcast

package pvr

import (
	"sync/atomic"

	"github.com/anzen-go/anzen/holly"
)

// Without the accelerator the native hooks only count their invocations.
var taSetups, taFrames atomic.Int32

func taSetup()       { taSetups.Add(1) }
func taBeginFrame()  {}
func taFinishFrame() { taFrames.Add(1) }

func sqFlush(holly.Addr) {}
