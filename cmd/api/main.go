package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/biztime-api/internal/application/usecase"
	"github.com/jhoicas/biztime-api/internal/domain/repository"
	"github.com/jhoicas/biztime-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/biztime-api/internal/infrastructure/pdf"
	"github.com/jhoicas/biztime-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/biztime-api/internal/interfaces/http"
	"github.com/jhoicas/biztime-api/pkg/config"
	"github.com/jhoicas/biztime-api/pkg/logger"
)

// storage agrupa los puertos de persistencia del driver elegido.
type storage struct {
	companies repository.CompanyRepository
	invoices  repository.InvoiceRepository
	tx        repository.ReadTxRunner
	pinger    httpRouter.Pinger
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer store.close()

	companyUC := usecase.NewCompanyUseCase(store.companies, store.invoices, store.tx)
	// PDF: representación gráfica de la factura
	invoiceUC := usecase.NewInvoiceUseCase(store.invoices, store.tx, infrapdf.NewMarotoPDFGenerator())

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:     cfg.App.Name,
		DocsPath: cfg.HTTP.DocsPath,
	}, httpRouter.RouterDeps{
		CompanyUC: companyUC,
		InvoiceUC: invoiceUC,
		Store:     store.pinger,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el pool de PostgreSQL o el store en memoria según STORE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Store.Driver == config.StoreMemory {
		mem := memory.NewStore()
		return &storage{
			companies: mem.Companies(),
			invoices:  mem.Invoices(),
			tx:        mem,
			pinger:    mem,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		companies: postgres.NewCompanyRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		pinger:    pool,
		close:     pool.Close,
	}, nil
}
