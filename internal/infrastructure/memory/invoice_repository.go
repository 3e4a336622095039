package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// maxAmount límite de NUMERIC(10,2).
var maxAmount = decimal.New(1, 8)

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct {
	s    *Store
	inTx bool
}

// List devuelve id y comp_code ordenados por id.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	if err := checkCtx(ctx, "list invoices"); err != nil {
		return nil, err
	}
	defer r.s.view(r.inTx)()

	list := make([]*entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		list = append(list, &entity.Invoice{ID: inv.ID, CompCode: inv.CompCode})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetByID devuelve nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	if err := checkCtx(ctx, "get invoice"); err != nil {
		return nil, err
	}
	defer r.s.view(r.inTx)()

	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

// ListIDsByCompany ids de las facturas de la empresa, ordenados.
func (r *InvoiceRepo) ListIDsByCompany(ctx context.Context, compCode string) ([]int64, error) {
	if err := checkCtx(ctx, "list invoice ids"); err != nil {
		return nil, err
	}
	defer r.s.view(r.inTx)()

	ids := []int64{}
	for id, inv := range r.s.invoices {
		if inv.CompCode == compCode {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Create aplica los DEFAULT del esquema: paid=false, add_date=hoy, paid_date=NULL.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	const op = "insert invoice"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	amt, err := normalizeAmount(op, invoice.Amt)
	if err != nil {
		return err
	}
	unlock, err := r.s.update(op, r.inTx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := r.s.companies[invoice.CompCode]; !ok {
		return domain.Conflict(op,
			fmt.Sprintf(`Key (comp_code)=(%s) is not present in table "companies".`, invoice.CompCode), nil)
	}
	r.s.nextID++
	y, m, d := r.s.now().Date()
	stored := entity.Invoice{
		ID:       r.s.nextID,
		CompCode: invoice.CompCode,
		Amt:      amt,
		Paid:     false,
		AddDate:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
	r.s.invoices[stored.ID] = stored
	*invoice = *copyInvoice(stored)
	return nil
}

// UpdateAmount cambia solo amt; nil si el id no existe.
func (r *InvoiceRepo) UpdateAmount(ctx context.Context, id int64, amt decimal.Decimal) (*entity.Invoice, error) {
	const op = "update invoice"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	normalized, err := normalizeAmount(op, amt)
	if err != nil {
		return nil, err
	}
	unlock, err := r.s.update(op, r.inTx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Amt = normalized
	r.s.invoices[id] = inv
	return copyInvoice(inv), nil
}

// Delete elimina la factura; la empresa no se toca.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "delete invoice"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	unlock, err := r.s.update(op, r.inTx)
	if err != nil {
		return false, err
	}
	defer unlock()

	if _, ok := r.s.invoices[id]; !ok {
		return false, nil
	}
	delete(r.s.invoices, id)
	return true, nil
}

// Insert guarda una factura tal cual (fechas y paid incluidos). Pensado para sembrar datos.
func (r *InvoiceRepo) Insert(invoice entity.Invoice) (int64, error) {
	unlock, err := r.s.update("seed invoice", r.inTx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	r.s.nextID++
	invoice.ID = r.s.nextID
	invoice.PaidDate = cloneTime(invoice.PaidDate)
	r.s.invoices[invoice.ID] = invoice
	return invoice.ID, nil
}

// normalizeAmount replica NUMERIC(10,2) + CHECK (amt > 0).
func normalizeAmount(op string, amt decimal.Decimal) (decimal.Decimal, error) {
	rounded := amt.Round(2)
	if !rounded.IsPositive() {
		return decimal.Zero, &domain.Error{Kind: domain.KindBadRequest, Op: op,
			Message: `new row for relation "invoices" violates check constraint "invoices_amt_check"`}
	}
	if rounded.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, &domain.Error{Kind: domain.KindBadRequest, Op: op,
			Message: "numeric field overflow"}
	}
	return rounded, nil
}

func copyInvoice(inv entity.Invoice) *entity.Invoice {
	out := inv
	out.PaidDate = cloneTime(inv.PaidDate)
	return &out
}
