//go:build !dreamcast

package pvr_test

import (
	"testing"

	"github.com/anzen-go/anzen/holly/pvr"
)

func TestSetupOnce(t *testing.T) {
	for range 3 {
		ctx, err := pvr.CreateContext(pvr.WithTransfer(&recorder{}))
		if err != nil {
			t.Fatal(err)
		}
		ctx.Destroy()
	}
	if n := pvr.TASetups(); n != 1 {
		t.Fatalf("accelerator set up %d times", n)
	}
}

func TestFinishFrame(t *testing.T) {
	ctx, _ := newContext(t)
	before := pvr.TAFrames()
	ctx.BeginFrame()
	ctx.EndFrame()
	if pvr.TAFrames() != before+1 {
		t.Fatal("frame not handed to the renderer")
	}
}
