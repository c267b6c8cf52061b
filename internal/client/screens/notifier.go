package screens

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

// Notifier shows transient notices to the user.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
	Info(ctx context.Context, msg string)
}

// TerminalNotifier prints notices to w, one per line, and logs them.
type TerminalNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	log logging.Logger
}

func NewTerminalNotifier(w io.Writer, log logging.Logger) *TerminalNotifier {
	if log == nil {
		log = logging.Nop()
	}
	return &TerminalNotifier{w: w, log: log}
}

func (n *TerminalNotifier) Success(ctx context.Context, msg string) {
	n.print("[ok] " + msg)
	n.log.Debug(ctx, "notice", "kind", "success", "msg", msg)
}

func (n *TerminalNotifier) Error(ctx context.Context, msg string) {
	n.print("[error] " + msg)
	n.log.Debug(ctx, "notice", "kind", "error", "msg", msg)
}

func (n *TerminalNotifier) Info(ctx context.Context, msg string) {
	n.print("[info] " + msg)
	n.log.Debug(ctx, "notice", "kind", "info", "msg", msg)
}

func (n *TerminalNotifier) print(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, line)
}

// validationMessage extracts the user-facing text of a validation error.
func validationMessage(err error) (string, bool) {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return verr.Msg, true
	}
	return "", false
}
