package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	s    *Store
	inTx bool
}

// List devuelve code y name ordenados por code.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	if err := checkCtx(ctx, "list companies"); err != nil {
		return nil, err
	}
	defer r.s.view(r.inTx)()

	list := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		list = append(list, &entity.Company{Code: c.Code, Name: c.Name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// GetByCode devuelve nil si no existe.
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	if err := checkCtx(ctx, "get company"); err != nil {
		return nil, err
	}
	defer r.s.view(r.inTx)()

	c, ok := r.s.companies[code]
	if !ok {
		return nil, nil
	}
	return copyCompany(c), nil
}

// Create inserta la empresa si code y name no están en uso.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	const op = "insert company"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	unlock, err := r.s.update(op, r.inTx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, exists := r.s.companies[company.Code]; exists {
		return domain.Conflict(op, fmt.Sprintf("Company code already exists: %s", company.Code), nil)
	}
	if r.s.nameTaken(company.Name, "") {
		return domain.Conflict(op, fmt.Sprintf("Key (name)=(%s) already exists.", company.Name), nil)
	}
	r.s.companies[company.Code] = *copyCompany(*company)
	return nil
}

// Update sobrescribe name y description; nil si el código no existe.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) (*entity.Company, error) {
	const op = "update company"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	unlock, err := r.s.update(op, r.inTx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, ok := r.s.companies[company.Code]
	if !ok {
		return nil, nil
	}
	if r.s.nameTaken(company.Name, company.Code) {
		return nil, domain.Conflict(op, fmt.Sprintf("Key (name)=(%s) already exists.", company.Name), nil)
	}
	current.Name = company.Name
	current.Description = cloneString(company.Description)
	r.s.companies[company.Code] = current
	return copyCompany(current), nil
}

// Delete rechaza el borrado si la empresa aún tiene facturas (FK RESTRICT).
func (r *CompanyRepo) Delete(ctx context.Context, code string) (bool, error) {
	const op = "delete company"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	unlock, err := r.s.update(op, r.inTx)
	if err != nil {
		return false, err
	}
	defer unlock()

	if _, ok := r.s.companies[code]; !ok {
		return false, nil
	}
	for _, inv := range r.s.invoices {
		if inv.CompCode == code {
			return false, domain.Conflict(op,
				fmt.Sprintf(`Key (code)=(%s) is still referenced from table "invoices".`, code), nil)
		}
	}
	delete(r.s.companies, code)
	return true, nil
}

// nameTaken informa si otra empresa (distinta de except) ya usa name. Requiere el lock tomado.
func (s *Store) nameTaken(name, except string) bool {
	for code, c := range s.companies {
		if code != except && c.Name == name {
			return true
		}
	}
	return false
}

func copyCompany(c entity.Company) *entity.Company {
	return &entity.Company{Code: c.Code, Name: c.Name, Description: cloneString(c.Description)}
}
