package converter

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedConversion matches every error of KindUnsupportedConversion.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrSourceRead matches every error of KindSourceRead.
	ErrSourceRead = errors.New("source read error")

	// ErrTargetWrite matches every error of KindTargetWrite.
	ErrTargetWrite = errors.New("target write error")

	ErrNotImplemented   = errors.New("conversion not implemented yet")
	ErrUnknownExtension = errors.New("unknown extension")
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrMalformedInput   = errors.New("malformed input")
	ErrTargetExists     = errors.New("target file already exists")
)

// Kind classifies a failed conversion.
type Kind int

const (
	KindNone Kind = iota
	KindUnsupportedConversion
	KindSourceRead
	KindTargetWrite
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedConversion:
		return "unsupported conversion"
	case KindSourceRead:
		return "source read error"
	case KindTargetWrite:
		return "target write error"
	default:
		return "none"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnsupportedConversion:
		return ErrUnsupportedConversion
	case KindSourceRead:
		return ErrSourceRead
	case KindTargetWrite:
		return ErrTargetWrite
	default:
		return nil
	}
}

// Error is returned by every failing conversion step. errors.Is matches
// the kind sentinel, the reason and the underlying error.
type Error struct {
	Kind   Kind
	Reason error
	Path   string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Reason != nil {
		msg = e.Reason.Error()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 3)
	for _, err := range []error{e.Kind.sentinel(), e.Reason, e.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// KindOf returns the kind carried by err, or KindNone.
func KindOf(err error) Kind {
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Kind
	}
	return KindNone
}

func unsupported(reason error, pair Pair) error {
	return &Error{Kind: KindUnsupportedConversion, Reason: reason, Path: pair.String()}
}

func sourceError(reason error, path string, err error) error {
	return &Error{Kind: KindSourceRead, Reason: reason, Path: path, Err: err}
}

func targetError(reason error, path string, err error) error {
	return &Error{Kind: KindTargetWrite, Reason: reason, Path: path, Err: err}
}
