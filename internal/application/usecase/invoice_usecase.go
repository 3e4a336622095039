package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

// InvoicePDFGenerator puerto para la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, company *entity.Company) ([]byte, error)
}

// InvoiceUseCase aplica reglas de negocio para el libro de facturas.
type InvoiceUseCase struct {
	repo      repository.InvoiceRepository
	tx        repository.ReadTxRunner
	generator InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso. generator puede ser nil si no se expone el PDF.
func NewInvoiceUseCase(
	repo repository.InvoiceRepository,
	tx repository.ReadTxRunner,
	generator InvoicePDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, tx: tx, generator: generator}
}

// List lista las facturas ordenadas por id.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]dto.InvoiceSummary, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceSummary, 0, len(list))
	for _, inv := range list {
		items = append(items, dto.InvoiceSummary{ID: inv.ID, CompCode: inv.CompCode})
	}
	return items, nil
}

// Get obtiene la factura con su empresa embebida.
func (uc *InvoiceUseCase) Get(ctx context.Context, rawID string) (*dto.InvoiceDetailResponse, error) {
	inv, company, err := uc.loadWithCompany(ctx, "invoice.get", rawID)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceDetailResponse{
		ID:       inv.ID,
		Amt:      dto.FormatAmount(inv.Amt),
		Paid:     inv.Paid,
		AddDate:  dto.FormatDate(inv.AddDate),
		PaidDate: dto.FormatNullableDate(inv.PaidDate),
		Company:  *entityToCompanyResponse(company),
	}, nil
}

// Create registra una factura para una empresa existente.
// paid, add_date y paid_date toman los valores por defecto del store.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	const op = "invoice.create"

	if in.CompCode == "" {
		return nil, domain.BadRequest(op, "comp_code is required")
	}
	if err := validateAmount(op, in.Amt); err != nil {
		return nil, err
	}
	inv := &entity.Invoice{CompCode: in.CompCode, Amt: *in.Amt}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return entityToInvoiceResponse(inv), nil
}

// Update modifica solo amt. El id solo puede venir en la URL.
func (uc *InvoiceUseCase) Update(ctx context.Context, rawID string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	const op = "invoice.update"

	if in.HasID() {
		return nil, domain.BadRequest(op, "ID must be a URL parameter.")
	}
	if err := validateAmount(op, in.Amt); err != nil {
		return nil, err
	}
	id, ok := parseInvoiceID(rawID)
	if !ok {
		return nil, invoiceNotFound(op, rawID)
	}
	inv, err := uc.repo.UpdateAmount(ctx, id, *in.Amt)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, invoiceNotFound(op, rawID)
	}
	return entityToInvoiceResponse(inv), nil
}

// Delete elimina la factura; la empresa propietaria no se toca.
func (uc *InvoiceUseCase) Delete(ctx context.Context, rawID string) (*dto.StatusResponse, error) {
	const op = "invoice.delete"

	id, ok := parseInvoiceID(rawID)
	if !ok {
		return nil, invoiceNotFound(op, rawID)
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, invoiceNotFound(op, rawID)
	}
	return &dto.StatusResponse{Status: dto.StatusDeleted}, nil
}

// PDF genera la representación gráfica de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrInconsistent     si la empresa propietaria no aparece.
func (uc *InvoiceUseCase) PDF(ctx context.Context, rawID string) ([]byte, string, error) {
	const op = "invoice.pdf"

	if uc.generator == nil {
		return nil, "", domain.Internal(op, fmt.Errorf("pdf generator not configured"))
	}
	inv, company, err := uc.loadWithCompany(ctx, op, rawID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateInvoicePDF(ctx, inv, company)
	if err != nil {
		return nil, "", domain.Internal(op, err)
	}
	return doc, fmt.Sprintf("invoice-%d.pdf", inv.ID), nil
}

// loadWithCompany lee factura y empresa en la misma transacción de solo lectura.
// Una factura cuya empresa no existe es un estado inconsistente, no un not found.
func (uc *InvoiceUseCase) loadWithCompany(ctx context.Context, op, rawID string) (*entity.Invoice, *entity.Company, error) {
	id, ok := parseInvoiceID(rawID)
	if !ok {
		return nil, nil, invoiceNotFound(op, rawID)
	}

	var (
		inv     *entity.Invoice
		company *entity.Company
	)
	err := uc.tx.ReadTx(ctx, func(companies repository.CompanyRepository, invoices repository.InvoiceRepository) error {
		var err error
		inv, err = invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return invoiceNotFound(op, rawID)
		}
		company, err = companies.GetByCode(ctx, inv.CompCode)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.Inconsistent(op, "invoice %d references missing company %s", inv.ID, inv.CompCode)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, company, nil
}

func validateAmount(op string, amt *decimal.Decimal) error {
	if amt == nil {
		return domain.BadRequest(op, "amt is required")
	}
	if !amt.IsPositive() {
		return domain.BadRequest(op, "amt must be greater than zero")
	}
	return nil
}

// parseInvoiceID acepta solo enteros dentro del rango de invoices.id (serial, int4);
// cualquier otro valor no puede identificar una fila.
func parseInvoiceID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return id, true
}

func invoiceNotFound(op, rawID string) *domain.Error {
	return domain.NotFound(op, "No matching invoice: %s", rawID)
}

func entityToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &dto.InvoiceResponse{
		ID:       inv.ID,
		CompCode: inv.CompCode,
		Amt:      dto.FormatAmount(inv.Amt),
		Paid:     inv.Paid,
		AddDate:  dto.FormatDate(inv.AddDate),
		PaidDate: dto.FormatNullableDate(inv.PaidDate),
	}
}
