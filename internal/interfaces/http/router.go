package http

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/biztime-api/internal/application/usecase"
	"github.com/jhoicas/biztime-api/pkg/logger"
)

// Pinger comprueba que el almacenamiento responde (pgxpool.Pool y memory.Store lo cumplen).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC *usecase.CompanyUseCase
	InvoiceUC *usecase.InvoiceUseCase
	Store     Pinger
	Log       *logger.Logger
}

// AppConfig opciones de la app Fiber.
type AppConfig struct {
	Name     string
	DocsPath string // ruta a swagger.json; vacío o inexistente = sin /docs
}

// NewApp construye la app Fiber con middleware, manejo de errores y rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Los códigos de empresa admiten cualquier string; c.Params devuelve el valor decodificado.
		UnescapePath: true,
		ErrorHandler: ErrorHandler(deps.Log),
	})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Log))
	app.Use(recover.New())

	if cfg.DocsPath != "" {
		if _, err := os.Stat(cfg.DocsPath); err == nil {
			// Swagger UI en local: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.DocsPath,
				Path:     "docs",
				Title:    "Biztime API",
			}))
		} else {
			deps.Log.Warn().Str("path", cfg.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/health", healthHandler(cfg.Name, deps.Store))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	companies := app.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:code", companyHandler.Get)
	companies.Put("/:code", companyHandler.Update)
	companies.Delete("/:code", companyHandler.Delete)

	invoices := app.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
}

func healthHandler(name string, store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": name})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	}
}
