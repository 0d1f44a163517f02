package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/validation"
)

// Validator runs the field rule chains against incoming requests and binds
// request DTOs for handlers.
type Validator struct {
	validate *validator.Validate
	log      *zap.Logger
}

func NewValidator(log *zap.Logger) *Validator {
	validate := validator.New()
	// Violations report json names so tag-based checks read like chain ones.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: validate, log: log}
}

// Rules evaluates the given chains against the request before the handler
// runs. All chains are evaluated so the response carries every field's
// violation; a failed store probe inside a chain aborts with INTERNAL_ERROR
// instead of a verdict.
func (m *Validator) Rules(chains ...*validation.Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		src, err := buildSource(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				constants.BuildErrorResponse(apperrors.NewValidationError(apperrors.FieldViolation{
					Location: string(validation.LocationBody),
					Field:    "body",
					Message:  "request body is not valid JSON",
				})))
			return
		}

		if err := validation.Run(c.Request.Context(), src, chains...); err != nil {
			if ve := apperrors.GetValidationError(err); ve != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(ve))
				return
			}
			m.log.Error("Validation probe failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				constants.BuildErrorResponse(apperrors.ErrInternal))
			return
		}

		c.Next()
	}
}

// Bind decodes the JSON body into out and checks the struct tags. Chains
// catch the domain grammars; the tags are the structural backstop.
func (m *Validator) Bind(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return apperrors.NewValidationError(apperrors.FieldViolation{
			Location: string(validation.LocationBody),
			Field:    "body",
			Message:  "request body is not valid JSON",
		})
	}

	if err := m.validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		violations := []apperrors.FieldViolation{}
		if errors.As(err, &fieldErrs) {
			for _, e := range fieldErrs {
				violations = append(violations, apperrors.FieldViolation{
					Location: string(validation.LocationBody),
					Field:    e.Field(),
					Message:  "failed on " + e.Tag(),
				})
			}
		}
		return apperrors.NewValidationError(violations...)
	}
	return nil
}

// buildSource reads the request into a MapSource and restores the body so
// the handler can still bind it.
func buildSource(c *gin.Context) (validation.MapSource, error) {
	src := validation.MapSource{
		Body:   map[string]string{},
		Query:  map[string]string{},
		Params: map[string]string{},
	}

	for _, p := range c.Params {
		src.Params[p.Key] = p.Value
	}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			src.Query[key] = values[0]
		}
	}

	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return src, nil
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return src, err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))

	var body map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return src, err
	}

	for key, value := range body {
		if s, ok := stringifyScalar(value); ok {
			src.Body[key] = s
		}
	}
	return src, nil
}

// stringifyScalar renders a decoded JSON scalar the way the falsy rules
// expect it. Arrays and objects carry no chain-checkable value.
func stringifyScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	case nil:
		return "null", true
	default:
		return "", false
	}
}
