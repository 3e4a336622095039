package dto

import "time"

// StatusDeleted marcador devuelto por los DELETE exitosos.
const StatusDeleted = "deleted"

// StatusResponse cuerpo de respuesta sin eco de la entidad.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse cuerpo de error HTTP: {"error": {...}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody detalle del error; Status replica el código HTTP.
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
}

// dateLayout timestamp completo en UTC con milisegundos.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatDate serializa una fecha como medianoche UTC del mismo día.
func FormatDate(t time.Time) string {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

// FormatNullableDate igual que FormatDate, nil se mantiene nil.
func FormatNullableDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}
