// Copyright 2024 The sstread Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package status provides the typed error taxonomy used across the table
// read path: a Code/SubCode pair plus an Async flag recording whether the
// error was produced on a completion callback rather than returned inline.
package status

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Code categorizes the outcome of an operation.
type Code int

const (
	CodeOK Code = iota
	CodeNotFound
	CodeCorruption
	CodeNotSupported
	CodeInvalidArgument
	CodeIOError
	CodeMergeInProgress
	CodeIncomplete
	CodeShutdownInProgress
	CodeTimedOut
	CodeAborted
	CodeBusy
	CodeExpired
	CodeTryAgain
	CodeIOPending
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeNotFound:
		return "NotFound"
	case CodeCorruption:
		return "Corruption"
	case CodeNotSupported:
		return "NotSupported"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeIOError:
		return "IOError"
	case CodeMergeInProgress:
		return "MergeInProgress"
	case CodeIncomplete:
		return "Incomplete"
	case CodeShutdownInProgress:
		return "ShutdownInProgress"
	case CodeTimedOut:
		return "TimedOut"
	case CodeAborted:
		return "Aborted"
	case CodeBusy:
		return "Busy"
	case CodeExpired:
		return "Expired"
	case CodeTryAgain:
		return "TryAgain"
	case CodeIOPending:
		return "IOPending"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// SubCode refines a Code with additional detail. Most codes carry SubCodeNone.
type SubCode int

const (
	SubCodeNone SubCode = iota
	SubCodeMutexTimeout
	SubCodeLockTimeout
	SubCodeLockLimit
	SubCodeNoSpace
	SubCodeDeadlock
	SubCodeStaleFile
	SubCodeMemoryLimit
	SubCodeOnComplete
)

func (s SubCode) String() string {
	switch s {
	case SubCodeNone:
		return "None"
	case SubCodeMutexTimeout:
		return "MutexTimeout"
	case SubCodeLockTimeout:
		return "LockTimeout"
	case SubCodeLockLimit:
		return "LockLimit"
	case SubCodeNoSpace:
		return "NoSpace"
	case SubCodeDeadlock:
		return "Deadlock"
	case SubCodeStaleFile:
		return "StaleFile"
	case SubCodeMemoryLimit:
		return "MemoryLimit"
	case SubCodeOnComplete:
		return "OnComplete"
	default:
		return fmt.Sprintf("SubCode(%d)", int(s))
	}
}

// Error is the error type produced by every stage of the table read path.
// It is immutable once constructed: a value observed with Async=true is a
// distinct value from its synchronous counterpart, never the same value
// mutated in place.
type Error struct {
	Code  Code
	Sub   SubCode
	Msg   string
	Async bool
	cause error
}

// New constructs an Error with no wrapped cause, attaching a stack trace via
// cockroachdb/errors so the failure site survives logging.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg, cause: errors.WithStack(errors.New(msg))}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// WithSub returns a copy of e with Sub set, for the handful of codes that
// always carry a specific subcode (NoSpace, MemoryLimit, ...).
func (e *Error) WithSub(sub SubCode) *Error {
	cp := *e
	cp.Sub = sub
	return &cp
}

// WithAsync returns a copy of e with Async set to async; completion
// callbacks call it with true before invoking the client so the caller can distinguish
// inline delivery from deferred delivery (invariant 9 in the read-path
// test suite).
func (e *Error) WithAsync(async bool) *Error {
	cp := *e
	cp.Async = async
	return &cp
}

// Wrap wraps a lower-level error (typically one surfaced by a FileReader)
// into an Error carrying code, preserving it in the Unwrap chain. An err
// that already is (or wraps) an *Error is returned as that *Error, with its
// own code unchanged.
func Wrap(err error, code Code) *Error {
	if err == nil {
		return nil
	}
	if se, ok := AsError(err); ok {
		return se
	}
	return &Error{Code: code, Msg: err.Error(), cause: errors.Wrapf(err, "status: %s", code)}
}

func (e *Error) Error() string {
	if e.Sub != SubCodeNone {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Sub, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// SafeFormat implements redact.SafeFormatter: the Code and Sub are safe to
// log verbatim (a closed, known enum), while Msg may embed file paths or
// other user data and is redacted.
func (e *Error) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(e.Code.String()))
	if e.Sub != SubCodeNone {
		w.Printf(" (%s)", redact.SafeString(e.Sub.String()))
	}
	w.Printf(": %s", e.Msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is implements the errors.Is protocol: two *Error values are considered
// equal for sentinel matching if they share a Code and Sub, independent of
// message text or Async — this lets call sites build a fresh *Error for
// NotFound/IOPending and still have errors.Is(err, ErrNotFound) succeed.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Sub == t.Sub
}

// Sentinel errors for the two codes the async/cache protocol tests against
// by identity rather than by message.
var (
	ErrNotFound  = New(CodeNotFound, "not found")
	ErrIOPending = New(CodeIOPending, "io pending")
)

// Corruption constructs a Corruption-coded Error, the taxonomy used for any
// decode, length, checksum, or decompression failure (section 4 of the read
// path design).
func Corruption(format string, args ...interface{}) *Error {
	return Newf(CodeCorruption, format, args...)
}

// InvalidArgument constructs an InvalidArgument-coded Error.
func InvalidArgument(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// NotSupported constructs a NotSupported-coded Error, used by codecs with no
// available decoder (XPRESS).
func NotSupported(format string, args ...interface{}) *Error {
	return Newf(CodeNotSupported, format, args...)
}

// IOError wraps err as an IOError-coded Error, optionally with a subcode.
func IOError(err error, sub SubCode) *Error {
	wrapped := Wrap(err, CodeIOError)
	if sub != SubCodeNone {
		return wrapped.WithSub(sub)
	}
	return wrapped
}

// NoSpace constructs the fixed Code=IOError, Sub=NoSpace combination the
// boundary contract requires.
func NoSpace(msg string) *Error {
	return New(CodeIOError, msg).WithSub(SubCodeNoSpace)
}

// MemoryLimit constructs the fixed Code=Aborted, Sub=MemoryLimit combination
// the boundary contract requires.
func MemoryLimit(msg string) *Error {
	return New(CodeAborted, msg).WithSub(SubCodeMemoryLimit)
}

// AsError unwraps err (which may be wrapped by cockroachdb/errors layers)
// down to its *Error, if any.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// GetCode extracts the Code carried by err, if err wraps a *Error.
func GetCode(err error) (Code, bool) {
	se, ok := AsError(err)
	if !ok {
		return CodeOK, false
	}
	return se.Code, true
}

// GetSubCode extracts the SubCode carried by err, if err wraps a *Error.
func GetSubCode(err error) (SubCode, bool) {
	se, ok := AsError(err)
	if !ok {
		return SubCodeNone, false
	}
	return se.Sub, true
}

// IsNotFound reports whether err is (or wraps) a NotFound status.
func IsNotFound(err error) bool {
	code, ok := GetCode(err)
	return ok && code == CodeNotFound
}

// IsIOPending reports whether err is (or wraps) an IOPending status.
func IsIOPending(err error) bool {
	code, ok := GetCode(err)
	return ok && code == CodeIOPending
}

// IsCorruption reports whether err is (or wraps) a Corruption status.
func IsCorruption(err error) bool {
	code, ok := GetCode(err)
	return ok && code == CodeCorruption
}
