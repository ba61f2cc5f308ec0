package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessResponse(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
		data       interface{}
	}{
		{
			name:       "Success with string data",
			statusCode: http.StatusOK,
			message:    "Operation successful",
			data:       "test data",
		},
		{
			name:       "Success with map data",
			statusCode: http.StatusCreated,
			message:    "Resource created",
			data:       map[string]interface{}{"id": "123", "name": "test"},
		},
		{
			name:       "Success with nil data",
			statusCode: http.StatusOK,
			message:    "Success",
			data:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)

			err := SuccessResponse(c, tt.statusCode, tt.message, tt.data)
			assert.NoError(t, err)
			assert.Equal(t, tt.statusCode, rec.Code)

			var response Response
			err = json.Unmarshal(rec.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.True(t, response.Success)
			assert.Equal(t, tt.message, response.Message)
			assert.Equal(t, tt.data, response.Data)
		})
	}
}

func TestErrorResponseHandler(t *testing.T) {
	c, rec := newTestContext(t)

	err := ErrorResponseHandler(c, http.StatusBadGateway, "upstream unavailable")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var response ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "upstream unavailable", response.Error)
	assert.Equal(t, http.StatusBadGateway, response.Code)
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name           string
		fn             func(echo.Context, string) error
		message        string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Bad request",
			fn:             BadRequestResponse,
			message:        "Invalid amount",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid amount",
		},
		{
			name:           "Unauthorized with default message",
			fn:             UnauthorizedResponse,
			message:        "",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Unauthorized",
		},
		{
			name:           "Forbidden with default message",
			fn:             ForbiddenResponse,
			message:        "",
			expectedStatus: http.StatusForbidden,
			expectedError:  "Forbidden",
		},
		{
			name:           "Not found",
			fn:             NotFoundResponse,
			message:        "User not found in database.",
			expectedStatus: http.StatusNotFound,
			expectedError:  "User not found in database.",
		},
		{
			name:           "Internal server error with default message",
			fn:             InternalServerErrorResponse,
			message:        "",
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)

			err := tt.fn(c, tt.message)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response ErrorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedError, response.Error)
		})
	}
}
