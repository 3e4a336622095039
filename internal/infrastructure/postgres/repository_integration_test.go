package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
	"github.com/jhoicas/biztime-api/internal/infrastructure/postgres"
	"github.com/jhoicas/biztime-api/pkg/config"
)

// openTestPool conecta a TEST_DATABASE_URL y recrea el esquema; sin la variable el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../data/schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	return pool
}

func strPtr(s string) *string { return &s }

func TestPostgres_CompanyAndInvoiceLifecycle(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	companies := postgres.NewCompanyRepository(pool)
	invoices := postgres.NewInvoiceRepository(pool)

	acme := &entity.Company{Code: "acme", Name: "Acme", Description: strPtr("Maker of things")}
	require.NoError(t, companies.Create(ctx, acme))

	err := companies.Create(ctx, &entity.Company{Code: "acme", Name: "Acme 2"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Company code already exists: acme", domain.MessageOf(err))

	err = companies.Create(ctx, &entity.Company{Code: "acme2", Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Key (name)=(Acme) already exists.", domain.MessageOf(err))

	inv := &entity.Invoice{CompCode: "acme", Amt: decimal.NewFromInt(200)}
	require.NoError(t, invoices.Create(ctx, inv))
	assert.NotZero(t, inv.ID)
	assert.False(t, inv.Paid)
	assert.Nil(t, inv.PaidDate)
	assert.Equal(t, "200.00", inv.Amt.StringFixed(2))

	ids, err := invoices.ListIDsByCompany(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []int64{inv.ID}, ids)

	updated, err := invoices.UpdateAmount(ctx, inv.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "1000.00", updated.Amt.StringFixed(2))
	assert.Equal(t, inv.AddDate, updated.AddDate)

	_, err = companies.Delete(ctx, "acme")
	assert.ErrorIs(t, err, domain.ErrConflict, "la FK RESTRICT impide borrar una empresa con facturas")

	err = invoices.Create(ctx, &entity.Invoice{CompCode: "ghost", Amt: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	deleted, err := invoices.Delete(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = companies.Delete(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := companies.GetByCode(ctx, "acme")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostgres_ReadTxSeesCommittedRows(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, &entity.Company{Code: "ibm", Name: "IBM"}))

	runner := postgres.NewTxRunner(pool)
	err := runner.ReadTx(ctx, func(companies repository.CompanyRepository, _ repository.InvoiceRepository) error {
		c, err := companies.GetByCode(ctx, "ibm")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Nil(t, c.Description)
		return nil
	})
	require.NoError(t, err)
}
