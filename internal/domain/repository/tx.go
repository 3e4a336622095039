package repository

import "context"

// ReadTxRunner ejecuta lecturas dependientes (p. ej. factura → empresa) sobre una misma instantánea.
type ReadTxRunner interface {
	ReadTx(ctx context.Context, fn func(companies CompanyRepository, invoices InvoiceRepository) error) error
}
