package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// List devuelve code y name de todas las empresas, ordenadas por code.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name FROM companies ORDER BY code`)
	if err != nil {
		return nil, classify("list companies", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, classify("scan company", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list companies", err)
	}
	return list, nil
}

// GetByCode obtiene una empresa por código.
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	const query = `SELECT code, name, description FROM companies WHERE code = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, code).Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, classify("get company", err)
	}
	return &c, nil
}

// Create persiste una nueva empresa y refresca la entidad con lo que quedó guardado.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	const query = `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description`
	err := r.q.QueryRow(ctx, query, company.Code, company.Name, company.Description).
		Scan(&company.Code, &company.Name, &company.Description)
	if err != nil {
		return companyInsertError(company.Code, err)
	}
	return nil
}

// Update actualiza name y description; devuelve nil si el código no existe.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) (*entity.Company, error) {
	const query = `
		UPDATE companies
		   SET name = $1,
		       description = $2
		 WHERE code = $3
		RETURNING code, name, description`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, company.Name, company.Description, company.Code).
		Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, classify("update company", err)
	}
	return &c, nil
}

// Delete elimina una empresa por código. Con facturas asociadas la FK (RESTRICT) lo impide.
func (r *CompanyRepo) Delete(ctx context.Context, code string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM companies WHERE code = $1`, code)
	if err != nil {
		return false, classify("delete company", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// companyInsertError distingue la PK duplicada del resto de violaciones (p. ej. UNIQUE(name)),
// que conservan el detalle de PostgreSQL.
func companyInsertError(code string, err error) error {
	if uniqueConstraint(err) == constraintCompaniesPKey {
		return domain.Conflict("insert company", fmt.Sprintf("Company code already exists: %s", code), err)
	}
	return classify("insert company", err)
}
