package runtime

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext is cancelled on SIGINT or SIGTERM, whichever arrives first.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
