package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biztime-api/internal/domain"
)

// bodyValidator valida los DTO de entrada con las etiquetas `validate`; los nombres de campo
// en los mensajes son los de la etiqueta json.
var bodyValidator = newBodyValidator()

func newBodyValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON del body en dst y lo valida.
func parseBody(c *fiber.Ctx, op string, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &domain.Error{Kind: domain.KindBadRequest, Op: op, Message: "invalid JSON body", Err: err}
	}
	if err := bodyValidator.Struct(dst); err != nil {
		return &domain.Error{Kind: domain.KindBadRequest, Op: op, Message: validationMessage(err), Err: err}
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
