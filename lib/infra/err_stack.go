package infra

import (
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) file() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFile"
	}
	f, _ := fn.FileLine(pc)
	return f
}

func (frame Frame) line() int {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return 0
	}
	_, l := fn.FileLine(pc)
	return l
}

func (frame Frame) name() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - verbose, equivalent to %s:%d
// %+s - full path (<function-name>\n\t<path>)
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, frame.file())
		} else {
			_, _ = io.WriteString(s, path.Base(frame.file()))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(frame.line()))
	case 'n':
		_, _ = io.WriteString(s, funcName(frame.name()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

// MarshalText renders "<func> <file>:<line>".
func (frame Frame) MarshalText() ([]byte, error) {
	name := frame.name()
	if name == "unknownFunc" {
		return []byte("unknownFrame"), nil
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(frame.file())
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(frame.line()))
	return []byte(builder.String()), nil
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

// callerFrame returns the frame of the caller of the exported constructor.
func callerFrame(skip int) Frame {
	var pcs [1]uintptr
	if n := runtime.Callers(skip+2, pcs[:]); n <= 0 {
		return Frame(0)
	}
	return Frame(pcs[0])
}

// ErrorStack is an error that remembers where it was raised and which
// errors it carries. It can be inlined into zap fields directly.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Frame() Frame
	Unwrap() []error
}

var _ ErrorStack = (*errorStack)(nil)

type errorStack struct {
	msg   string
	errs  error // multierr combined
	frame Frame
}

// NewErrorStack creates an error stack with message only.
func NewErrorStack(msg string) error {
	return &errorStack{
		msg:   msg,
		frame: callerFrame(1),
	}
}

// WrapErrorStack records the caller frame on err.
// A nil err stays nil.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		errs:  err,
		frame: callerFrame(1),
	}
}

// WrapErrorStackWithMessage records the caller frame and a message on err.
// A nil err stays nil.
func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		msg:   msg,
		errs:  err,
		frame: callerFrame(1),
	}
}

// AppendErrorStack appends errs to es. If es is not an error stack,
// a new one is created at the caller frame and es becomes its first error.
func AppendErrorStack(es error, errs ...error) error {
	var target *errorStack
	if !errors.As(es, &target) || target == nil {
		target = &errorStack{
			errs:  es,
			frame: callerFrame(1),
		}
	}
	for _, err := range errs {
		target.errs = multierr.Append(target.errs, err)
	}
	if target.errs == nil && target.msg == "" {
		return nil
	}
	return target
}

func (es *errorStack) Error() string {
	if es == nil {
		return ""
	}
	switch {
	case es.errs == nil:
		return es.msg
	case es.msg == "":
		return es.errs.Error()
	}
	return es.msg + ": " + es.errs.Error()
}

func (es *errorStack) Frame() Frame {
	return es.frame
}

// Unwrap exposes the carried errors to errors.Is and errors.As.
func (es *errorStack) Unwrap() []error {
	if es == nil || es.errs == nil {
		return nil
	}
	return multierr.Errors(es.errs)
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if es == nil {
		return nil
	}
	if es.msg != "" {
		enc.AddString("errorMsg", es.msg)
	}
	if text, err := es.frame.MarshalText(); err == nil {
		enc.AddByteString("errorAt", text)
	}
	errs := es.Unwrap()
	if len(errs) <= 0 {
		return nil
	}
	return enc.AddArray("errors", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, err := range errs {
			arr.AppendString(err.Error())
		}
		return nil
	}))
}
