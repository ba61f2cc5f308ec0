package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/payments/mocks"
)

const paidWebhookBody = `{
	"data": {
		"id": "evt_1",
		"attributes": {
			"type": "payment.paid",
			"data": {"id": "src_1"}
		}
	}
}`

func webhookContext(e *echo.Echo, body string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func signBody(secret, timestamp, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHandleWebhook_PaidEvent(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "")

	e := echo.New()
	c, rec := webhookContext(e, paidWebhookBody, nil)

	mockUC.EXPECT().
		Reconcile(gomock.Any(), "src_1", models.WebhookEventPaymentPaid, "evt_1").
		Return(nil)

	// Act
	err := handler.HandleWebhook(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleWebhook_FlatPayload(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "")

	e := echo.New()
	// flat shape: resource id at data.id, no nested resource
	body := `{"data": {"id": "src_1", "attributes": {"type": "payment.failed"}}}`
	c, rec := webhookContext(e, body, nil)

	mockUC.EXPECT().
		Reconcile(gomock.Any(), "src_1", models.WebhookEventPaymentFailed, "src_1").
		Return(nil)

	// Act
	err := handler.HandleWebhook(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleWebhook_MalformedJSON(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Reconcile expectation: malformed payloads never reach the use case
	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "")

	e := echo.New()
	c, rec := webhookContext(e, `not json`, nil)

	// Act
	err := handler.HandleWebhook(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWebhook_MissingFields(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "")

	e := echo.New()

	cases := []struct {
		name string
		body string
	}{
		{"no event type", `{"data": {"id": "src_1", "attributes": {}}}`},
		{"no resource id", `{"data": {"attributes": {"type": "payment.paid"}}}`},
		{"empty body", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := webhookContext(e, tc.body, nil)

			err := handler.HandleWebhook(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleWebhook_ValidSignature(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "whsk_test")

	e := echo.New()
	signature := signBody("whsk_test", "1693400000", paidWebhookBody)
	c, rec := webhookContext(e, paidWebhookBody, map[string]string{
		"Paymongo-Signature": "t=1693400000,te=" + signature,
	})

	mockUC.EXPECT().
		Reconcile(gomock.Any(), "src_1", models.WebhookEventPaymentPaid, "evt_1").
		Return(nil)

	// Act
	err := handler.HandleWebhook(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "whsk_test")

	e := echo.New()
	c, rec := webhookContext(e, paidWebhookBody, map[string]string{
		"Paymongo-Signature": "t=1693400000,te=deadbeef",
	})

	// Act
	err := handler.HandleWebhook(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleWebhook_MissingSignatureHeader(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "whsk_test")

	e := echo.New()
	c, rec := webhookContext(e, paidWebhookBody, nil)

	// Act
	err := handler.HandleWebhook(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleWebhook_UnknownEventStillAcked(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockPaymentUseCase(ctrl)
	handler := NewWebhookHandler(mockUC, "")

	e := echo.New()
	body := `{"data": {"id": "src_1", "attributes": {"type": "source.chargeable"}}}`
	c, rec := webhookContext(e, body, nil)

	mockUC.EXPECT().
		Reconcile(gomock.Any(), "src_1", "source.chargeable", "src_1").
		Return(nil)

	// Act
	err := handler.HandleWebhook(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
