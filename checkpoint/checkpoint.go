// Package checkpoint decorates errors with the location they passed through,
// which results in something similar to a stacktrace when printed.
// The decorated errors stay reachable by errors.Is and errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// frame is the caller location recorded by a checkpoint.
type frame struct {
	ok   bool
	file string
	line int
}

func callerFrame() frame {
	// 0 = callerFrame, 1 = From/Wrap, 2 = the function that called them.
	_, file, line, ok := runtime.Caller(2)
	return frame{ok: ok, file: filepath.Base(file), line: line}
}

func (f frame) String() string {
	if !f.ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", f.file, f.line)
}

// passThrough reports errors which must never be wrapped.
// Readers compare io.EOF with == (https://github.com/golang/go/issues/39155).
func passThrough(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

// From wraps err by a new checkpoint holding the caller location.
// It returns nil if err is nil.
func From(err error) error {
	if err == nil || passThrough(err) {
		return err
	}

	return &checkpoint{
		err:   err,
		frame: callerFrame(),
	}
}

// Wrap adds a checkpoint to cause and describes it with err.
// Usually err is a predefined sentinel:
//  var ErrSomethingWentWrong = errors.New("a very bad error")
//
//  func something() error {
//  	err := other()
//  	return checkpoint.Wrap(err, ErrSomethingWentWrong)
//  }
// errors.Is then matches ErrSomethingWentWrong as well as the cause.
// Returns nil if cause is nil.
func Wrap(cause, err error) error {
	if cause == nil || passThrough(cause) {
		return cause
	}

	return &checkpoint{
		err:   err,
		prev:  cause,
		frame: callerFrame(),
	}
}

type checkpoint struct {
	err   error
	prev  error
	frame frame
}

func (e *checkpoint) Error() string {
	var b strings.Builder
	b.WriteString("File: ")
	b.WriteString(e.frame.String())
	if e.err != nil {
		b.WriteString("\n\t")
		b.WriteString(e.err.Error())
	}

	if e.prev == nil {
		return b.String()
	}

	b.WriteString("\n")
	if _, ok := e.prev.(*checkpoint); ok {
		b.WriteString(e.prev.Error())
	} else {
		b.WriteString("File: unknown\n\t")
		b.WriteString(strings.ReplaceAll(e.prev.Error(), "\n", "\n\t"))
	}
	return b.String()
}

func (e *checkpoint) Unwrap() error {
	if e.prev == nil {
		return e.err
	}
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return e.err != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.err != nil && errors.As(e.err, target)
}
