package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

// List devuelve id y comp_code de todas las facturas, ordenadas por id.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT id, comp_code FROM invoices ORDER BY id`)
	if err != nil {
		return nil, classify("list invoices", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompCode); err != nil {
			return nil, classify("scan invoice", err)
		}
		list = append(list, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list invoices", err)
	}
	return list, nil
}

// GetByID obtiene una factura completa por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, classify("get invoice", err)
	}
	return inv, nil
}

// ListIDsByCompany devuelve los ids de las facturas de una empresa.
func (r *InvoiceRepo) ListIDsByCompany(ctx context.Context, compCode string) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM invoices WHERE comp_code = $1 ORDER BY id`, compCode)
	if err != nil {
		return nil, classify("list invoice ids", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, classify("scan invoice id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list invoice ids", err)
	}
	return ids, nil
}

// Create inserta comp_code y amt; el resto de columnas toma los DEFAULT de la tabla.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING ` + invoiceColumns
	created, err := scanInvoice(r.q.QueryRow(ctx, query, invoice.CompCode, invoice.Amt))
	if err != nil {
		return classify("insert invoice", err)
	}
	*invoice = *created
	return nil
}

// UpdateAmount cambia solo amt; devuelve nil si el id no existe.
func (r *InvoiceRepo) UpdateAmount(ctx context.Context, id int64, amt decimal.Decimal) (*entity.Invoice, error) {
	query := `
		UPDATE invoices
		   SET amt = $1
		 WHERE id = $2
		RETURNING ` + invoiceColumns
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, amt, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, classify("update invoice", err)
	}
	return inv, nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return false, classify("delete invoice", err)
	}
	return cmd.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := row.Scan(&inv.ID, &inv.CompCode, &inv.Amt, &inv.Paid, &inv.AddDate, &inv.PaidDate); err != nil {
		return nil, err
	}
	return &inv, nil
}
