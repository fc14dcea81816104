package swlist

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrorKind classifies the errors accumulated in a List log.
type ErrorKind uint8

const (
	ParseError        ErrorKind = iota // malformed entity, skipped
	ReferenceError                     // dangling reference, entity kept
	SourceUnavailable                  // list source can't be read
	DuplicateKeyError                  // shortname seen twice, first kept
)

var (
	ErrParse             = errors.New("parse error")
	ErrReference         = errors.New("reference error")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrDuplicateKey      = errors.New("duplicate key")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case ParseError:
		return ErrParse
	case ReferenceError:
		return ErrReference
	case SourceUnavailable:
		return ErrSourceUnavailable
	case DuplicateKeyError:
		return ErrDuplicateKey
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is an entry of a List error log.
type Error struct {
	Kind   ErrorKind
	List   string
	Line   int // 0 when the error isn't tied to a source position
	Column int
	Msg    string
	Err    error // underlying error, if any
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s.xml(%d.%d): %s", e.List, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s.xml: %s", e.List, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel error of e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
