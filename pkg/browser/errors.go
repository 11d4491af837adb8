package browser

import (
	"errors"
	"fmt"
)

// Kind categorizes a Fault into one of the flat taxonomy buckets.
type Kind int

const (
	KindConnection Kind = iota + 1
	KindWindow
	KindTab
	KindNavigation
	KindSelection
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindWindow:
		return "window"
	case KindTab:
		return "tab"
	case KindNavigation:
		return "navigation"
	case KindSelection:
		return "selection"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Sentinels for kind-level matching with errors.Is. A *Fault of the
// corresponding Kind matches its sentinel regardless of message or cause.
var (
	ErrConnection = errors.New("connection fault")
	ErrWindow     = errors.New("window fault")
	ErrTab        = errors.New("tab fault")
	ErrNavigation = errors.New("navigation fault")
	ErrSelection  = errors.New("selection fault")
	ErrTimeout    = errors.New("timeout fault")
)

// Fault is the error type raised by every operation in this package. The
// driver's original error is chained in Err; Op and Message name the failed
// operation and its key argument (URL, expression, index range).
type Fault struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s fault [%s]: %s: %v", f.Kind, f.Op, f.Message, f.Err)
	}
	return fmt.Sprintf("%s fault [%s]: %s", f.Kind, f.Op, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Is lets errors.Is match a Fault against the kind sentinels above.
func (f *Fault) Is(target error) bool {
	switch target {
	case ErrConnection:
		return f.Kind == KindConnection
	case ErrWindow:
		return f.Kind == KindWindow
	case ErrTab:
		return f.Kind == KindTab
	case ErrNavigation:
		return f.Kind == KindNavigation
	case ErrSelection:
		return f.Kind == KindSelection
	case ErrTimeout:
		return f.Kind == KindTimeout
	}
	return false
}

// faultf builds a *Fault with a formatted message, chaining cause when
// non-nil.
func faultf(kind Kind, op string, cause error, format string, args ...any) *Fault {
	return &Fault{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// IsConnectionFault reports whether err is, or wraps, a connection Fault.
func IsConnectionFault(err error) bool { return hasKind(err, KindConnection) }

// IsWindowFault reports whether err is, or wraps, a window Fault.
func IsWindowFault(err error) bool { return hasKind(err, KindWindow) }

// IsTabFault reports whether err is, or wraps, a tab Fault.
func IsTabFault(err error) bool { return hasKind(err, KindTab) }

// IsNavigationFault reports whether err is, or wraps, a navigation Fault.
func IsNavigationFault(err error) bool { return hasKind(err, KindNavigation) }

// IsSelectionFault reports whether err is, or wraps, a selection Fault.
func IsSelectionFault(err error) bool { return hasKind(err, KindSelection) }

// IsTimeoutFault reports whether err is, or wraps, a timeout Fault.
func IsTimeoutFault(err error) bool { return hasKind(err, KindTimeout) }

func hasKind(err error, kind Kind) bool {
	var f *Fault
	for e := err; errors.As(e, &f); e = f.Err {
		if f.Kind == kind {
			return true
		}
		if f.Err == nil {
			break
		}
	}
	return false
}
