package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/application/usecase"
)

// InvoiceHandler maneja las peticiones HTTP del libro de facturas.
type InvoiceHandler struct {
	uc *usecase.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.InvoiceListEnvelope
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.InvoiceListEnvelope{Invoices: items})
}

// Get godoc
// @Summary      Obtener factura con su empresa
// @Tags         invoices
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceDetailEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.InvoiceDetailEnvelope{Invoice: *out})
}

// Create godoc
// @Summary      Crear factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "comp_code y amt"
// @Success      201   {object}  dto.InvoiceEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, "invoice.create", &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InvoiceEnvelope{Invoice: *out})
}

// Update godoc
// @Summary      Cambiar el monto de una factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "amt"
// @Success      200   {object}  dto.InvoiceEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := parseBody(c, "invoice.update", &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.InvoiceEnvelope{Invoice: *out})
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
