package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/pkg/logger"
)

// ErrorHandler es la frontera de despacho: todo error devuelto por un handler o middleware
// termina aquí y se traduce a {"error": {message, status, code}}.
// Los 5xx se registran y nunca exponen el error crudo del store.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, message := describeError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("kind", string(domain.KindOf(err))).
				Str("request_id", requestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("petición fallida")
		}
		return c.Status(status).JSON(dto.ErrorResponse{Error: dto.ErrorBody{
			Message: message,
			Status:  status,
			Code:    code,
		}})
	}
}

// describeError decide status, código y mensaje a partir de la clase del error.
func describeError(err error) (int, string, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, codeForStatus(fe.Code), fe.Message
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return fiber.StatusNotFound, "NOT_FOUND", domain.MessageOf(err)
	case domain.KindBadRequest:
		return fiber.StatusBadRequest, "VALIDATION", domain.MessageOf(err)
	case domain.KindConflict:
		return fiber.StatusConflict, "CONFLICT", domain.MessageOf(err)
	case domain.KindInconsistent:
		return fiber.StatusInternalServerError, "INCONSISTENT_STATE", "internal server error"
	case domain.KindUnavailable:
		return fiber.StatusInternalServerError, "STORE_UNAVAILABLE", "service unavailable"
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "internal server error"
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "INVALID_BODY"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "ERROR"
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
