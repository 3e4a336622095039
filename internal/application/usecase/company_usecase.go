package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	invoices repository.InvoiceRepository
	tx       repository.ReadTxRunner
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	invoices repository.InvoiceRepository,
	tx repository.ReadTxRunner,
) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, invoices: invoices, tx: tx}
}

// List lista todas las empresas ordenadas por código (sin descripción ni facturas).
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanySummary, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanySummary, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CompanySummary{Code: c.Code, Name: c.Name})
	}
	return items, nil
}

// Get obtiene una empresa y los ids de sus facturas.
// Ambas lecturas comparten transacción; si la empresa no existe no se consultan las facturas.
func (uc *CompanyUseCase) Get(ctx context.Context, code string) (*dto.CompanyDetailResponse, error) {
	const op = "company.get"

	var out *dto.CompanyDetailResponse
	err := uc.tx.ReadTx(ctx, func(companies repository.CompanyRepository, invoices repository.InvoiceRepository) error {
		company, err := companies.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.NotFound(op, "No matching company: %s", code)
		}
		ids, err := invoices.ListIDsByCompany(ctx, code)
		if err != nil {
			return err
		}
		if ids == nil {
			ids = []int64{}
		}
		out = &dto.CompanyDetailResponse{
			CompanyResponse: *entityToCompanyResponse(company),
			Invoices:        ids,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create crea una nueva empresa. Un código repetido devuelve un fallo de clase conflict.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	const op = "company.create"

	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.BadRequest(op, "code and name are required")
	}
	company := &entity.Company{
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Update sobrescribe name y description. El código solo puede venir en la URL.
func (uc *CompanyUseCase) Update(ctx context.Context, code string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	const op = "company.update"

	if in.HasCode() {
		return nil, domain.BadRequest(op, "Company code must be passed in URL")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.BadRequest(op, "name is required")
	}
	updated, err := uc.repo.Update(ctx, &entity.Company{
		Code:        code,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound(op, "No matching company: %s", code)
	}
	return entityToCompanyResponse(updated), nil
}

// Delete elimina la empresa. Si aún tiene facturas, el store rechaza el borrado (conflict).
func (uc *CompanyUseCase) Delete(ctx context.Context, code string) (*dto.StatusResponse, error) {
	deleted, err := uc.repo.Delete(ctx, code)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domain.NotFound("company.delete", "No matching company: %s", code)
	}
	return &dto.StatusResponse{Status: dto.StatusDeleted}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
	}
}
