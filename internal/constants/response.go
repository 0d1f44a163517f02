package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
)

// Standard Response Field Keys
const (
	ResponseFieldHTTPStatus = "httpStatus"
	ResponseFieldType       = "type"
	ResponseFieldMessage    = "message"
	ResponseFieldValidation = "validationErrors"
	ResponseFieldData       = "data"
	ResponseFieldTotal      = "total"
	ResponseFieldPage       = "page"
	ResponseFieldPageTotal  = "page_total"
)

// Pagination defaults
const (
	QueryParamPage   = "page"
	QueryParamLimit  = "limit"
	QueryParamSearch = "search"
	DefaultPage      = "1"
	DefaultLimit     = "10"
	MinPage          = 1
	MinLimit         = 1
	MaxLimit         = 100
)

// PaginationParams holds parsed page/limit/offset for list endpoints.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
	Search string
}

// ParsePaginationParams parses page, limit and search query parameters with
// bounds applied.
func ParsePaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery(QueryParamPage, DefaultPage))
	limit, _ := strconv.Atoi(c.DefaultQuery(QueryParamLimit, DefaultLimit))

	if page < MinPage {
		page = MinPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
		Search: c.Query(QueryParamSearch),
	}
}

// BuildErrorResponse builds the error envelope every failed request returns:
// {httpStatus, type, message, validationErrors?}.
func BuildErrorResponse(err error) map[string]any {
	response := map[string]any{
		ResponseFieldHTTPStatus: apperrors.ToHTTPStatus(err),
		ResponseFieldType:       apperrors.Code(err),
		ResponseFieldMessage:    apperrors.GetErrorMessage(err),
	}

	if ve := apperrors.GetValidationError(err); ve != nil {
		response[ResponseFieldValidation] = ve.Violations
	}

	return response
}

// BuildSuccessResponse builds a minimal success body.
func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}

// BuildListResponse builds the paginated list body.
func BuildListResponse(total int64, page, pageTotal int, data any) map[string]any {
	return map[string]any{
		ResponseFieldTotal:     total,
		ResponseFieldPage:      page,
		ResponseFieldPageTotal: pageTotal,
		ResponseFieldData:      data,
	}
}
