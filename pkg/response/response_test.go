package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFail(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.Wrap(apperrors.CodeInvalidBounds, "invalid bounding box", nil), http.StatusBadRequest, apperrors.CodeInvalidBounds},
		{apperrors.Wrap(apperrors.CodeDataFetchFailure, "unable to load data", errors.New("timeout")), http.StatusBadGateway, apperrors.CodeDataFetchFailure},
		{apperrors.Wrap(apperrors.CodeUnauthorized, "missing token", nil), http.StatusUnauthorized, apperrors.CodeUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		Fail(c, tt.err)

		require.Equal(t, tt.status, rec.Code)
		body := decode(t, rec)
		require.Equal(t, tt.status, body.Code)
		require.Equal(t, tt.code, body.Error)
		require.Len(t, c.Errors, 1)
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	Success(c, gin.H{"count": 2})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, 0, body.Code)
	require.Equal(t, "success", body.Message)
	require.Equal(t, map[string]interface{}{"count": 2.0}, body.Data)
}
