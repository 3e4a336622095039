package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// List devuelve solo ID y CompCode, ordenados por id.
	List(ctx context.Context) ([]*entity.Invoice, error)
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	// ListIDsByCompany devuelve los ids de las facturas de la empresa, ordenados.
	ListIDsByCompany(ctx context.Context, compCode string) ([]int64, error)
	// Create inserta CompCode y Amt; completa ID, Paid, AddDate y PaidDate con los valores por defecto del store.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// UpdateAmount cambia solo amt; devuelve nil si el id no existe.
	UpdateAmount(ctx context.Context, id int64, amt decimal.Decimal) (*entity.Invoice, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
