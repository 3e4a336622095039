package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Cada uno identifica una clase de fallo; la capa HTTP decide el status a partir de la clase.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInconsistent = errors.New("estado inconsistente")
	ErrUnavailable  = errors.New("almacenamiento no disponible")
	ErrInternal     = errors.New("error interno")
)

// Kind clasificación gruesa de un fallo.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindBadRequest   Kind = "bad_request"
	KindConflict     Kind = "conflict"
	KindInconsistent Kind = "inconsistent"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// Error resultado de fallo de una operación: clase, operación y mensaje apto para el cliente.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := e.Message
	if e.Op != "" {
		base = e.Op + ": " + base
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is permite errors.Is(err, domain.ErrNotFound) sobre un *Error de la clase correspondiente.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return sentinel(e.Kind) == target
}

func sentinel(k Kind) error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindBadRequest:
		return ErrInvalidInput
	case KindConflict:
		return ErrConflict
	case KindInconsistent:
		return ErrInconsistent
	case KindUnavailable:
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// KindOf devuelve la clase de err; los errores no tipados son KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindBadRequest
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInconsistent):
		return KindInconsistent
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	}
	return KindInternal
}

// MessageOf devuelve el mensaje apto para el cliente, o "" si err no es un *Error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// NotFound construye un fallo de recurso inexistente.
func NotFound(op, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

// BadRequest construye un fallo por entrada inválida o campo prohibido.
func BadRequest(op, format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Conflict construye un fallo por violación de unicidad o integridad referencial.
func Conflict(op, msg string, err error) *Error {
	return &Error{Kind: KindConflict, Op: op, Message: msg, Err: err}
}

// Inconsistent construye un fallo por un join que no devolvió la fila esperada.
func Inconsistent(op, format string, args ...any) *Error {
	return &Error{Kind: KindInconsistent, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Unavailable envuelve un fallo de transporte/conexión con el almacenamiento.
func Unavailable(op string, err error) *Error {
	return &Error{Kind: KindUnavailable, Op: op, Message: "service unavailable", Err: err}
}

// Internal envuelve un fallo inesperado.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Message: "internal server error", Err: err}
}
