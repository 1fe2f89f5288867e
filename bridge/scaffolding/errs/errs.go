// Package errs provides application errors that carry an HTTP status and
// encode themselves as a JSON message body.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode is an application error category.
type ErrCode int

const (
	OK ErrCode = iota
	InvalidArgument
	NotFound
	MethodNotAllowed
	PayloadTooLarge
	Internal
	// InternalOnlyLog is logged in full but sent to the caller as a generic
	// Internal error.
	InternalOnlyLog
)

var codeStatus = map[ErrCode]int{
	OK:               http.StatusOK,
	InvalidArgument:  http.StatusBadRequest,
	NotFound:         http.StatusNotFound,
	MethodNotAllowed: http.StatusMethodNotAllowed,
	PayloadTooLarge:  http.StatusRequestEntityTooLarge,
	Internal:         http.StatusInternalServerError,
	InternalOnlyLog:  http.StatusInternalServerError,
}

var codeNames = map[ErrCode]string{
	OK:               "ok",
	InvalidArgument:  "invalid_argument",
	NotFound:         "not_found",
	MethodNotAllowed: "method_not_allowed",
	PayloadTooLarge:  "payload_too_large",
	Internal:         "internal",
	InternalOnlyLog:  "internal_only_log",
}

func (c ErrCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// HTTPStatus returns the status code the category is sent with.
func (c ErrCode) HTTPStatus() int {
	if status, ok := codeStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is an application error. FuncName and FileName record where it was
// constructed for logging.
type Error struct {
	Code     ErrCode `json:"-"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
	err      error
}

// New constructs an Error from a Go error, keeping it for errors.Is/As.
func New(code ErrCode, err error) *Error {
	e := newError(code, err.Error())
	e.err = err
	return e
}

// Wrapf constructs an Error whose client message is formatted independently
// of err. err is kept for logging and errors.Is/As.
func Wrapf(code ErrCode, err error, format string, v ...any) *Error {
	e := newError(code, fmt.Sprintf(format, v...))
	e.err = err
	return e
}

// Newf constructs an Error with a formatted message.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newError(code, fmt.Sprintf(format, v...))
}

func newError(code ErrCode, msg string) *Error {
	e := Error{
		Code:    code,
		Message: msg,
	}

	if pc, file, line, ok := runtime.Caller(2); ok {
		e.FileName = fmt.Sprintf("%s:%d", file, line)
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.FuncName = fn.Name()
		}
	}

	return &e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil && e.err.Error() != e.Message {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped Go error, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Encode implements web.Encoder.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web package's status interface.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// IsError reports whether err wraps an *Error.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns the *Error wrapped by err, or nil.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
