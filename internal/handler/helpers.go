package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"libreria/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
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

// respondError translates a domain error into its HTTP status and envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(apierror.Status(err), apierror.New(err.Error()))
}

// pathID parses the :id path parameter. A non-numeric id cannot name any
// resource, so it maps to 404.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional numeric query parameter (e.g. ?pv=3).
// Returns (nil, true) when absent, (nil, false) after writing a 422 when malformed.
func queryUint(c *gin.Context, name string) (*uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Parámetro "+name+" inválido"))
		return nil, false
	}
	u := uint(v)
	return &u, true
}
