package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func rulesRouter(chains ...*validation.Chain) *gin.Engine {
	v := NewValidator(zap.NewNop())
	router := gin.New()
	router.POST("/test", v.Rules(chains...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRulesPassThrough(t *testing.T) {
	router := rulesRouter(validation.Email())
	rec := postJSON(router, `{"email":"user@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRulesEnvelopeCarriesAllViolations(t *testing.T) {
	router := rulesRouter(validation.Name(), validation.Email())
	rec := postJSON(router, `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		HTTPStatus int    `json:"httpStatus"`
		Type       string `json:"type"`
		Message    string `json:"message"`
		Violations []struct {
			Location string `json:"location"`
			Field    string `json:"field"`
			Message  string `json:"message"`
		} `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, http.StatusBadRequest, body.HTTPStatus)
	assert.Equal(t, "VALIDATION_ERROR", body.Type)
	assert.Equal(t, "name is required", body.Message, "message reports the first violation")
	require.Len(t, body.Violations, 2)
	assert.Equal(t, "name", body.Violations[0].Field)
	assert.Equal(t, "email", body.Violations[1].Field)
}

// JSON falsy scalars count as missing for Required, exactly like absence.
func TestRulesFalsyScalars(t *testing.T) {
	router := rulesRouter(validation.Name())

	for _, body := range []string{
		`{}`,
		`{"name":""}`,
		`{"name":0}`,
		`{"name":null}`,
		`{"name":false}`,
	} {
		rec := postJSON(router, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestRulesMalformedJSON(t *testing.T) {
	router := rulesRouter(validation.Email())
	rec := postJSON(router, `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// The body must still be bindable by the handler after the rules ran.
func TestRulesPreservesBodyForHandler(t *testing.T) {
	v := NewValidator(zap.NewNop())
	router := gin.New()
	router.POST("/test", v.Rules(validation.Email()), func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		require.NoError(t, c.ShouldBindJSON(&req))
		c.JSON(http.StatusOK, gin.H{"email": req.Email})
	})

	rec := postJSON(router, `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user@example.com")
}

// Struct-tag violations name the wire field, same as chain violations.
func TestBindReportsJSONFieldNames(t *testing.T) {
	v := NewValidator(zap.NewNop())
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req struct {
			Password string `json:"password" validate:"required,min=8"`
		}
		if err := v.Bind(c, &req); err != nil {
			c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
			return
		}
		c.Status(http.StatusOK)
	})

	rec := postJSON(router, `{"password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"password"`)
	assert.NotContains(t, rec.Body.String(), "Password")
}

func TestRulesParamChains(t *testing.T) {
	v := NewValidator(zap.NewNop())
	router := gin.New()
	router.GET("/cafes/:cafeId", v.Rules(validation.IDParam("cafeId")), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cafes/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/cafes/abc", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
