package pvr_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/anzen-go/anzen/holly/pvr"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	pvr.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer pvr.SetLogger(nil)

	ctx, _ := newContext(t)
	pass, _ := ctx.CreatePass()
	list, _ := pass.List(pvr.ListTranslucent)
	list.Submit()
	pass.Submit()
	ctx.Destroy()

	out := buf.String()
	for _, msg := range []string{"context acquired", "pass submitted", "lists=TR", "context released"} {
		if !strings.Contains(out, msg) {
			t.Errorf("missing %q in log:\n%s", msg, out)
		}
	}
}
