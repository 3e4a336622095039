// Package memory implementa los puertos de persistencia en memoria del proceso.
//
// Respeta las mismas restricciones que el esquema PostgreSQL (unicidad de code y name,
// FK comp_code con RESTRICT, amt > 0 con dos decimales) para que los casos de uso y la
// capa HTTP se comporten igual con ambos drivers. Se usa en tests y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
)

var _ repository.ReadTxRunner = (*Store)(nil)

var errReadOnly = errors.New("cannot execute write in a read-only transaction")

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	companies map[string]entity.Company
	invoices  map[int64]entity.Invoice
	nextID    int64
	now       func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]entity.Company),
		invoices:  make(map[int64]entity.Invoice),
		now:       time.Now,
	}
}

// SetClock fija el reloj usado para add_date.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Companies devuelve el repositorio de empresas sobre este store.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Invoices devuelve el repositorio de facturas sobre este store.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// ReadTx ejecuta fn con el lock de lectura tomado; los repos recibidos no vuelven a bloquear
// y rechazan escrituras, igual que una transacción READ ONLY.
func (s *Store) ReadTx(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	invoices repository.InvoiceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("begin transaction", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&CompanyRepo{s: s, inTx: true}, &InvoiceRepo{s: s, inTx: true})
}

// view toma el lock de lectura salvo que ya lo tenga la transacción en curso.
func (s *Store) view(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// update toma el lock de escritura; dentro de una transacción de lectura falla.
func (s *Store) update(op string, inTx bool) (func(), error) {
	if inTx {
		return nil, domain.Internal(op, errReadOnly)
	}
	s.mu.Lock()
	return s.mu.Unlock, nil
}

func checkCtx(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable(op, err)
	}
	return nil
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ping siempre responde mientras el contexto siga vivo.
func (s *Store) Ping(ctx context.Context) error {
	return checkCtx(ctx, "ping")
}
