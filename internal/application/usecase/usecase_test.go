package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/application/usecase"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
	"github.com/jhoicas/biztime-api/internal/infrastructure/memory"
)

type fixture struct {
	store     *memory.Store
	companies *usecase.CompanyUseCase
	invoices  *usecase.InvoiceUseCase
	pdf       *fakePDF
}

type fakePDF struct {
	calls int
	err   error
}

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, c *entity.Company) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-" + c.Code), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	s.SetClock(func() time.Time { return time.Date(2022, 8, 18, 10, 0, 0, 0, time.UTC) })
	pdf := &fakePDF{}
	return &fixture{
		store:     s,
		companies: usecase.NewCompanyUseCase(s.Companies(), s.Invoices(), s),
		invoices:  usecase.NewInvoiceUseCase(s.Invoices(), s, pdf),
		pdf:       pdf,
	}
}

func strPtr(s string) *string { return &s }

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (f *fixture) createTest1(t *testing.T) {
	t.Helper()
	_, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{
		Code: "test1", Name: "Test Company 1", Description: strPtr("This is a test"),
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Company Directory
// ──────────────────────────────────────────────────────────────────────────────

func TestCompany_GetAfterCreate(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)

	got, err := f.companies.Get(context.Background(), "test1")
	require.NoError(t, err)
	assert.Equal(t, "test1", got.Code)
	assert.Equal(t, "Test Company 1", got.Name)
	assert.Equal(t, "This is a test", *got.Description)
	assert.Equal(t, []int64{}, got.Invoices)
}

func TestCompany_GetListsInvoiceIDs(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()
	a, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("10")})
	require.NoError(t, err)
	b, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("20")})
	require.NoError(t, err)

	got, err := f.companies.Get(ctx, "test1")
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, got.Invoices)
}

func TestCompany_GetMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.companies.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "No matching company: nope", domain.MessageOf(err))
}

func TestCompany_CreateDuplicate(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)

	_, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{Code: "test1", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompany_CreateRequiresCodeAndName(t *testing.T) {
	f := newFixture(t)

	_, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{Code: " ", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompany_ListOrderedWithoutDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, code := range []string{"zeta", "alpha", "mid"} {
		_, err := f.companies.Create(ctx, dto.CreateCompanyRequest{Code: code, Name: "N " + code, Description: strPtr("d")})
		require.NoError(t, err)
	}

	list, err := f.companies.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.CompanySummary{
		{Code: "alpha", Name: "N alpha"},
		{Code: "mid", Name: "N mid"},
		{Code: "zeta", Name: "N zeta"},
	}, list)
}

func TestCompany_UpdateRejectsCodeInBody(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)

	for _, raw := range []string{`"other"`, `null`, `"test1"`} {
		_, err := f.companies.Update(context.Background(), "test1", dto.UpdateCompanyRequest{
			Code: json.RawMessage(raw), Name: "New",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "code=%s", raw)
	}
}

func TestCompany_Update(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)

	out, err := f.companies.Update(context.Background(), "test1", dto.UpdateCompanyRequest{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Name)
	assert.Nil(t, out.Description)

	_, err = f.companies.Update(context.Background(), "nope", dto.UpdateCompanyRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompany_Delete(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()

	out, err := f.companies.Delete(ctx, "test1")
	require.NoError(t, err)
	assert.Equal(t, "deleted", out.Status)

	_, err = f.companies.Get(ctx, "test1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.companies.Delete(ctx, "test1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompany_DeleteWithInvoicesConflicts(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()
	_, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("1")})
	require.NoError(t, err)

	_, err = f.companies.Delete(ctx, "test1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invoice Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_CreateThenGet(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()

	created, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("200")})
	require.NoError(t, err)
	assert.Equal(t, "test1", created.CompCode)
	assert.Equal(t, "200.00", created.Amt)
	assert.False(t, created.Paid)
	assert.Equal(t, "2022-08-18T00:00:00.000Z", created.AddDate)
	assert.Nil(t, created.PaidDate)

	got, err := f.invoices.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "200.00", got.Amt)
	assert.False(t, got.Paid)
	assert.Nil(t, got.PaidDate)
	assert.Equal(t, "test1", got.Company.Code)
	assert.Equal(t, "This is a test", *got.Company.Description)
}

func TestInvoice_CreateUnknownCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.Create(context.Background(), dto.CreateInvoiceRequest{CompCode: "ghost", Amt: amt("5")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInvoice_CreateRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)

	for _, a := range []*decimal.Decimal{nil, amt("0"), amt("-3")} {
		_, err := f.invoices.Create(context.Background(), dto.CreateInvoiceRequest{CompCode: "test1", Amt: a})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestInvoice_GetMissingAndNonNumeric(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.Get(context.Background(), "0")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.invoices.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_IDOutsideInt4IsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, raw := range []string{"2147483648", "3000000000", "-2147483649", "99999999999999999999"} {
		_, err := f.invoices.Get(ctx, raw)
		assert.ErrorIs(t, err, domain.ErrNotFound, raw)
		assert.Equal(t, "No matching invoice: "+raw, domain.MessageOf(err))

		_, err = f.invoices.Update(ctx, raw, dto.UpdateInvoiceRequest{Amt: amt("10")})
		assert.ErrorIs(t, err, domain.ErrNotFound, raw)

		_, err = f.invoices.Delete(ctx, raw)
		assert.ErrorIs(t, err, domain.ErrNotFound, raw)
	}
}

// orphanStore simula una fila de factura cuya empresa no aparece (FK violada fuera del store).
type orphanStore struct {
	*memory.Store
}

func (o orphanStore) ReadTx(ctx context.Context, fn func(repository.CompanyRepository, repository.InvoiceRepository) error) error {
	return o.Store.ReadTx(ctx, func(_ repository.CompanyRepository, invoices repository.InvoiceRepository) error {
		return fn(memory.NewStore().Companies(), invoices)
	})
}

func TestInvoice_GetMissingCompanyIsInconsistent(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()
	_, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("5")})
	require.NoError(t, err)

	uc := usecase.NewInvoiceUseCase(f.store.Invoices(), orphanStore{f.store}, nil)
	_, err = uc.Get(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrInconsistent)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_UpdateAmountOnly(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()
	created, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("200")})
	require.NoError(t, err)

	updated, err := f.invoices.Update(ctx, "1", dto.UpdateInvoiceRequest{Amt: amt("1000")})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", updated.Amt)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CompCode, updated.CompCode)
	assert.Equal(t, created.Paid, updated.Paid)
	assert.Equal(t, created.AddDate, updated.AddDate)
	assert.Equal(t, created.PaidDate, updated.PaidDate)
}

func TestInvoice_UpdateRejectsIDInBody(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)

	_, err := f.invoices.Update(context.Background(), "1", dto.UpdateInvoiceRequest{
		ID: json.RawMessage(`1`), Amt: amt("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoice_UpdateMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.Update(context.Background(), "42", dto.UpdateInvoiceRequest{Amt: amt("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_DeleteKeepsCompany(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()
	_, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("5")})
	require.NoError(t, err)

	out, err := f.invoices.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted", out.Status)

	company, err := f.companies.Get(ctx, "test1")
	require.NoError(t, err)
	assert.Empty(t, company.Invoices)

	_, err = f.invoices.Delete(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.invoices.Delete(ctx, "x1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_ListOrderedByID(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()
	for _, a := range []string{"3", "1", "2"} {
		_, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt(a)})
		require.NoError(t, err)
	}

	list, err := f.invoices.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, item := range list {
		assert.Equal(t, int64(i+1), item.ID)
		assert.Equal(t, "test1", item.CompCode)
	}
}

func TestInvoice_PDF(t *testing.T) {
	f := newFixture(t)
	f.createTest1(t)
	ctx := context.Background()
	_, err := f.invoices.Create(ctx, dto.CreateInvoiceRequest{CompCode: "test1", Amt: amt("5")})
	require.NoError(t, err)

	doc, name, err := f.invoices.PDF(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "invoice-1.pdf", name)
	assert.Equal(t, "%PDF-test1", string(doc))

	_, _, err = f.invoices.PDF(ctx, "2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, f.pdf.calls)

	f.pdf.err = errors.New("render")
	_, _, err = f.invoices.PDF(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrInternal)
}
