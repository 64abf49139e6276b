package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postWebhookForm(t *testing.T, handler gin.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/payment/webhook", handler, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/payment/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func telrForm() url.Values {
	form := url.Values{}
	form.Set("tran_store", "12345")
	form.Set("tran_type", "sale")
	form.Set("tran_class", "ecom")
	form.Set("tran_test", "0")
	form.Set("tran_ref", "TR-001")
	form.Set("tran_order", "1")
	form.Set("tran_currency", "AED")
	form.Set("tran_amount", "199.00")
	form.Set("tran_cartid", "20250908130500-abc")
	form.Set("tran_desc", "Order 20250908130500-abc")
	form.Set("tran_status", "A")
	form.Set("tran_authcode", "999999")
	form.Set("tran_authmessage", "Authorised")
	return form
}

func TestTelrSignatureDeterministic(t *testing.T) {
	form := telrForm()
	sig1 := TelrSignature("secret", form.Get)
	sig2 := TelrSignature("secret", form.Get)

	require.Len(t, sig1, 40) // hex sha1
	assert.Equal(t, sig1, sig2)

	// A different amount must change the signature.
	form.Set("tran_amount", "200.00")
	assert.NotEqual(t, sig1, TelrSignature("secret", form.Get))
}

func TestTelrWebhookAuthAcceptsValidSignature(t *testing.T) {
	t.Setenv("TELR_MODE", "prod")
	t.Setenv("TELR_WEBHOOK_SECRET", "secret")

	form := telrForm()
	form.Set("tran_check", TelrSignature("secret", form.Get))

	w := postWebhookForm(t, TelrWebhookAuth(), form)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTelrWebhookAuthRejectsBadSignature(t *testing.T) {
	t.Setenv("TELR_MODE", "prod")
	t.Setenv("TELR_WEBHOOK_SECRET", "secret")

	form := telrForm()
	form.Set("tran_check", "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")

	w := postWebhookForm(t, TelrWebhookAuth(), form)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTelrWebhookAuthRejectsMissingSignature(t *testing.T) {
	t.Setenv("TELR_MODE", "prod")
	t.Setenv("TELR_WEBHOOK_SECRET", "secret")

	w := postWebhookForm(t, TelrWebhookAuth(), telrForm())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTelrWebhookAuthSandboxSkipsVerification(t *testing.T) {
	t.Setenv("TELR_MODE", "sandbox")
	t.Setenv("TELR_WEBHOOK_SECRET", "secret")

	// No tran_check at all still passes in sandbox.
	w := postWebhookForm(t, TelrWebhookAuth(), telrForm())
	assert.Equal(t, http.StatusOK, w.Code)
}
