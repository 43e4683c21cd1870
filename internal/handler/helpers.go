package handler

import (
	"errors"
	"net/http"
	"reflect"

	"ayher/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the business error taxonomy onto HTTP status codes.
// Configuration defects are logged in full and surfaced as a generic 500:
// the client can do nothing about a missing movement type.
func respondError(c *gin.Context, err error) {
	var stockErr *apierror.StockInsuficienteError
	var confErr *apierror.ConfiguracionError
	var conflErr *apierror.ConflictoError
	var valErr *apierror.ValidacionError

	switch {
	case errors.Is(err, apierror.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, apierror.New(stockErr.Error()))
	case errors.As(err, &conflErr):
		c.JSON(http.StatusConflict, apierror.New(conflErr.Error()))
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, apierror.New(valErr.Error()))
	case errors.As(err, &confErr):
		log.Error().Err(err).Msg("error de configuración")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	default:
		log.Error().Err(err).Msg("error no clasificado")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
