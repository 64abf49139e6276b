package middleware

import (
	"crypto/sha1"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// telrCheckFields is the ordered field list Telr signs into tran_check.
var telrCheckFields = []string{
	"tran_store", "tran_type", "tran_class", "tran_test", "tran_ref",
	"tran_prevref", "tran_firstref", "tran_order", "tran_currency",
	"tran_amount", "tran_cartid", "tran_desc", "tran_status",
	"tran_authcode", "tran_authmessage",
}

// TelrSignature computes the SHA1 tran_check over the secret and the field
// values in gateway order. Exposed for the webhook tests.
func TelrSignature(secret string, field func(string) string) string {
	parts := []string{secret}
	for _, f := range telrCheckFields {
		parts = append(parts, strings.TrimSpace(field(f)))
	}
	h := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h[:])
}

// TelrWebhookAuth verifies the Telr webhook signature. Sandbox/dev mode
// skips the check so local testing doesn't need real gateway callbacks.
func TelrWebhookAuth() gin.HandlerFunc {
	secretKey := os.Getenv("TELR_WEBHOOK_SECRET")
	mode := strings.ToLower(os.Getenv("TELR_MODE"))

	return func(c *gin.Context) {
		if mode == "sandbox" || mode == "dev" {
			slog.Debug("sandbox mode, skipping webhook signature verification")
			c.Next()
			return
		}

		if secretKey == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook secret not configured"})
			c.Abort()
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form for signature verification"})
			c.Abort()
			return
		}

		providedCheck := c.PostForm("tran_check")
		if providedCheck == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing tran_check signature"})
			c.Abort()
			return
		}

		calculated := TelrSignature(secretKey, c.PostForm)
		if !strings.EqualFold(calculated, providedCheck) {
			slog.Warn("webhook signature mismatch", "ref", c.PostForm("tran_ref"))
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
