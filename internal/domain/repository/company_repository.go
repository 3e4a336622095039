package repository

import (
	"context"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
// Las lecturas por clave devuelven (nil, nil) cuando no existe la fila.
type CompanyRepository interface {
	List(ctx context.Context) ([]*entity.Company, error)
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	// Update sobrescribe name y description; devuelve nil si el código no existe.
	Update(ctx context.Context, company *entity.Company) (*entity.Company, error)
	// Delete informa si se borró alguna fila.
	Delete(ctx context.Context, code string) (bool, error)
}
