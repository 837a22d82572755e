package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// InterruptHandler cancels a session on SIGINT/SIGTERM. The first signal
// prints a warning followed by the caller's notice.
type InterruptHandler struct {
	out      io.Writer
	signals  chan os.Signal
	cancel   context.CancelFunc
	notice   string
	warnOnce sync.Once
	fired    atomic.Bool
}

// NewInterruptHandler writes its warning to out, or stdout when out is nil.
func NewInterruptHandler(out io.Writer) *InterruptHandler {
	if out == nil {
		out = os.Stdout
	}
	return &InterruptHandler{out: out}
}

// Watch returns a context canceled by the first interrupt or by Stop.
// notice is printed under the warning and may be empty.
func (h *InterruptHandler) Watch(ctx context.Context, notice string) context.Context {
	ctx, h.cancel = context.WithCancel(ctx)
	h.notice = notice
	h.signals = make(chan os.Signal, 1)
	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-h.signals:
			h.fired.Store(true)
			h.warn()
			h.cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

// Stop unsubscribes from signals and cancels the watched context.
func (h *InterruptHandler) Stop() {
	if h.signals != nil {
		signal.Stop(h.signals)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// Interrupted reports whether a signal arrived.
func (h *InterruptHandler) Interrupted() bool {
	return h.fired.Load()
}

func (h *InterruptHandler) warn() {
	h.warnOnce.Do(func() {
		msg := "\n\n" + FormatWarning("Interrupted!")
		if h.notice != "" {
			msg += "\n" + FormatInfo(h.notice)
		}
		if _, err := fmt.Fprintln(h.out, msg); err != nil {
			slog.Warn("Failed to write interrupt warning", "error", err)
		}
	})
}
