package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"` // AppError code
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// Fail maps err to a status by its AppError code and records it on the context.
// Errors without a known code become 500 with a generic message.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)

	code := apperrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		InternalError(c, "internal server error")
		return
	}

	c.JSON(status, Response{
		Code:    status,
		Message: err.Error(),
		Error:   code,
	})
}

var statusByCode = map[string]int{
	apperrors.CodeInvalidBounds:    http.StatusBadRequest,
	apperrors.CodeInvalidGridSize:  http.StatusBadRequest,
	apperrors.CodeInvalidRequest:   http.StatusBadRequest,
	apperrors.CodeUnauthorized:     http.StatusUnauthorized,
	apperrors.CodeDataFetchFailure: http.StatusBadGateway,
}
