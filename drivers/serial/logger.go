package serial

import (
	"io"
	"log/slog"
)

// NewLogger returns a logger writing text records of at least level to w,
// each framed as a KindLog packet.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(NewPacketWriter(w, KindLog), &slog.HandlerOptions{
		Level: level,
	}))
}
