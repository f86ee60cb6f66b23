package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/pkg/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal se valida como número: gt=0, min=0 funcionan sin "Bad field type".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los errores usan el nombre JSON del campo, que es el que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bindAndValidate parsea el body JSON y aplica los tags validate.
// Devuelve false si ya escribió la respuesta de error; el handler debe retornar sin escribir otra.
func bindAndValidate(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido: " + err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.CodeValidation, Message: err.Error()})
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    domain.CodeValidation,
			Message: "datos inválidos",
			Fields:  fields,
		})
	}
	return true, nil
}

// writeError traduce errores de dominio a HTTP. Los RuleError exponen su código y mensaje;
// lo demás es 500 y se registra.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	if re, ok := domain.AsRuleError(err); ok {
		code, msg = re.Code, re.Message
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
		if code == "INTERNAL" {
			code, msg = "NOT_FOUND", err.Error()
		}
	case errors.Is(err, domain.ErrInactive),
		errors.Is(err, domain.ErrCapabilityMismatch),
		errors.Is(err, domain.ErrMissingAttribute):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
		if code == "INTERNAL" {
			code, msg = domain.CodeValidation, err.Error()
		}
	case errors.Is(err, domain.ErrInsufficientStock):
		status = fiber.StatusConflict
		if code == "INTERNAL" {
			code, msg = domain.CodeInsufficientStock, err.Error()
		}
	case errors.Is(err, domain.ErrConcurrentModification):
		// reintentable: otra operación tocó el mismo bucket
		status, code, msg = fiber.StatusConflict, "CONFLICT", "el stock cambió durante la operación, reintente"
	case errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status = fiber.StatusForbidden
		if code == "INTERNAL" {
			code, msg = domain.CodeForbidden, err.Error()
		}
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
