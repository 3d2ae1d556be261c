package workflow

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindUnknown       Kind = ""
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindPhaseGuard    Kind = "phase_guard"
	KindTransport     Kind = "transport"
	KindNotFound      Kind = "not_found"
	KindBusy          Kind = "busy"
)

// Error - ошибка процесса оценки, сообщение показывается пользователю как есть
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) HumanMessage() string {
	return e.msg
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}

func AuthorizationError(format string, args ...any) error {
	return newError(KindAuthorization, format, args...)
}

func PhaseGuardError(format string, args ...any) error {
	return newError(KindPhaseGuard, format, args...)
}

func NotFoundError(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

func BusyError(format string, args ...any) error {
	return newError(KindBusy, format, args...)
}

// TransportError - сбой хранилища или сети, рабочее состояние формы не меняется
func TransportError(cause error, format string, args ...any) error {
	return &Error{kind: KindTransport, msg: fmt.Sprintf(format, args...), cause: cause}
}

func KindOf(err error) Kind {
	var wErr *Error
	if errors.As(err, &wErr) {
		return wErr.kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HumanMessage - текст для пользователя, пустая строка для неклассифицированных ошибок
func HumanMessage(err error) string {
	var wErr *Error
	if errors.As(err, &wErr) {
		return wErr.msg
	}
	return ""
}

// HumanMessageOr - сообщение для пользователя, для прочих ошибок их текст
func HumanMessageOr(err error) string {
	if msg := HumanMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
