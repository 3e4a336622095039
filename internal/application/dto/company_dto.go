package dto

import "encoding/json"

// CreateCompanyRequest body para POST /companies.
type CreateCompanyRequest struct {
	Code        string  `json:"code" validate:"required,max=50"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

// UpdateCompanyRequest body para PUT /companies/:code.
// Code solo se declara para detectar si el cliente intentó enviarlo; el código va en la URL.
type UpdateCompanyRequest struct {
	Code        json.RawMessage `json:"code,omitempty" swaggerignore:"true"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description"`
}

// HasCode informa si el body traía la clave "code" (aunque fuera null).
func (r UpdateCompanyRequest) HasCode() bool { return r.Code != nil }

// CompanySummary elemento del listado de empresas.
type CompanySummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CompanyDetailResponse empresa con los ids de sus facturas.
type CompanyDetailResponse struct {
	CompanyResponse
	Invoices []int64 `json:"invoices"`
}

// CompanyListEnvelope {"companies": [...]}.
type CompanyListEnvelope struct {
	Companies []CompanySummary `json:"companies"`
}

// CompanyEnvelope {"company": {...}}.
type CompanyEnvelope struct {
	Company CompanyResponse `json:"company"`
}

// CompanyDetailEnvelope {"company": {..., "invoices": [...]}}.
type CompanyDetailEnvelope struct {
	Company CompanyDetailResponse `json:"company"`
}
