package paymentControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/config"
	"github.com/framecart/eyewear-api/models"
)

// TelrPaymentResponse represents Telr response
type TelrPaymentResponse struct {
	Order struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"order"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the Telr hosted payment page API.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

type PaymentPage struct {
	URL string `json:"payment_url"`
	Ref string `json:"gateway_ref"`
}

// CreatePayment requests a hosted payment page for the order reference.
// Transient gateway failures are retried with exponential backoff; a Telr
// error response is permanent and surfaces immediately.
func (cl *Client) CreatePayment(ctx context.Context, order models.Order, name, email, phone string) (PaymentPage, error) {
	if cl.cfg.TelrStoreID == 0 || cl.cfg.TelrAuthKey == "" {
		return PaymentPage{}, errors.New("telr configuration missing")
	}

	testMode := 0
	if cl.cfg.TelrMode == "sandbox" || cl.cfg.TelrMode == "dev" {
		testMode = 1 // test mode even on live endpoint
	}

	payload := map[string]interface{}{
		"method":  "create",
		"store":   cl.cfg.TelrStoreID,
		"authkey": cl.cfg.TelrAuthKey,
		"order": map[string]interface{}{
			"cartid":      order.Reference,
			"test":        testMode,
			"amount":      fmt.Sprintf("%.2f", order.TotalAmount),
			"currency":    "AED",
			"description": "Order " + order.Reference,
		},
		"customer": map[string]interface{}{
			"name":  name,
			"email": email,
			"phone": phone,
		},
		"return": map[string]string{
			"authorised": cl.cfg.TelrSuccessURL,
			"declined":   cl.cfg.TelrFailureURL,
			"cancelled":  cl.cfg.TelrCancelURL,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return PaymentPage{}, err
	}

	operation := func() (PaymentPage, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.cfg.TelrAPIURL, bytes.NewReader(jsonData))
		if err != nil {
			return PaymentPage{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := cl.http.Do(req)
		if err != nil {
			return PaymentPage{}, fmt.Errorf("failed to reach telr: %w", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return PaymentPage{}, fmt.Errorf("telr API error (%d)", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return PaymentPage{}, backoff.Permanent(fmt.Errorf("telr API error (%d): %s", resp.StatusCode, string(body)))
		}

		var telrResp TelrPaymentResponse
		if err := json.Unmarshal(body, &telrResp); err != nil {
			return PaymentPage{}, backoff.Permanent(fmt.Errorf("failed to parse telr response: %w", err))
		}
		if telrResp.Error != nil {
			return PaymentPage{}, backoff.Permanent(fmt.Errorf("telr error: %s", telrResp.Error.Message))
		}
		if telrResp.Order.URL == "" {
			return PaymentPage{}, backoff.Permanent(errors.New("telr returned empty payment URL"))
		}

		return PaymentPage{URL: telrResp.Order.URL, Ref: telrResp.Order.Ref}, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(4),
	)
}

// PaymentRequestHandler creates a hosted payment page for a pending order
// that belongs to the caller.
func PaymentRequestHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			OrderRef string `json:"order_ref" binding:"required"`
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Phone    string `json:"phone" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		var order models.Order
		if err := db.Where("reference = ? AND user_id = ?", input.OrderRef, userIDVal.(string)).
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusConflict, gin.H{"error": "order already paid"})
			return
		}

		page, err := client.CreatePayment(c.Request.Context(), order, input.Name, input.Email, input.Phone)
		if err != nil {
			slog.Error("create telr payment", "order_ref", order.Reference, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_url": page.URL,
			"order_ref":   order.Reference,
			"gateway_ref": page.Ref,
		})
	}
}

// TelrWebhookHandler processes the gateway callback. The signature was
// already verified by the webhook middleware; here we only apply the status
// transition. tran_cartid carries our order reference.
func TelrWebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.PostForm("tran_cartid")
		tranStatus := c.PostForm("tran_status") // "A" = approved

		if reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing tran_cartid"})
			return
		}

		var order models.Order
		if err := db.Where("reference = ?", reference).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up order"})
			return
		}

		if tranStatus != "A" {
			if err := db.Model(&order).
				Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
				return
			}
			slog.Warn("payment declined", "order_ref", reference, "tran_status", tranStatus)
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})
			return
		}

		err := db.Model(&order).Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"status":         models.OrderStatusConfirmed,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		slog.Info("payment confirmed", "order_ref", reference, "amount", c.PostForm("tran_amount"))
		c.JSON(http.StatusOK, gin.H{"message": "Payment recorded"})
	}
}
