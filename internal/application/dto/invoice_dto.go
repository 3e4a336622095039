package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /invoices. Amt acepta número o string decimal.
type CreateInvoiceRequest struct {
	CompCode string           `json:"comp_code" validate:"required,max=50"`
	Amt      *decimal.Decimal `json:"amt" validate:"required" swaggertype:"number"`
}

// UpdateInvoiceRequest body para PATCH /invoices/:id (solo amt).
type UpdateInvoiceRequest struct {
	ID  json.RawMessage  `json:"id,omitempty" swaggerignore:"true"`
	Amt *decimal.Decimal `json:"amt" validate:"required" swaggertype:"number"`
}

// HasID informa si el body traía la clave "id".
func (r UpdateInvoiceRequest) HasID() bool { return r.ID != nil }

// InvoiceSummary elemento del listado de facturas.
type InvoiceSummary struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

// InvoiceResponse fila completa de una factura. Amt con dos decimales ("200.00").
type InvoiceResponse struct {
	ID       int64   `json:"id"`
	CompCode string  `json:"comp_code"`
	Amt      string  `json:"amt"`
	Paid     bool    `json:"paid"`
	AddDate  string  `json:"add_date"`
	PaidDate *string `json:"paid_date"`
}

// InvoiceDetailResponse factura con la empresa propietaria embebida en lugar de comp_code.
type InvoiceDetailResponse struct {
	ID       int64           `json:"id"`
	Amt      string          `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  string          `json:"add_date"`
	PaidDate *string         `json:"paid_date"`
	Company  CompanyResponse `json:"company"`
}

// InvoiceListEnvelope {"invoices": [...]}.
type InvoiceListEnvelope struct {
	Invoices []InvoiceSummary `json:"invoices"`
}

// InvoiceEnvelope {"invoice": {...}}.
type InvoiceEnvelope struct {
	Invoice InvoiceResponse `json:"invoice"`
}

// InvoiceDetailEnvelope {"invoice": {..., "company": {...}}}.
type InvoiceDetailEnvelope struct {
	Invoice InvoiceDetailResponse `json:"invoice"`
}

// FormatAmount serializa un monto en punto fijo con dos decimales.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
