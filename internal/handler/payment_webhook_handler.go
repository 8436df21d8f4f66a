package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"rentdesk/internal/domain"
	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/internal/validation"

	"github.com/gin-gonic/gin"
)

// PaymentWebhookHandler receives gateway callbacks of the form
// {"reference": "...", "status": "COMPLETED"}.
// Without a secret, callbacks are refused unless allowUnsigned is set.
type PaymentWebhookHandler struct {
	svc           *service.FinanceService
	secret        string
	allowUnsigned bool
}

func NewPaymentWebhookHandler(svc *service.FinanceService, secret string, allowUnsigned bool) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{svc: svc, secret: secret, allowUnsigned: allowUnsigned}
}

func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, "invalid body")
		return
	}
	switch {
	case h.secret != "":
		if !VerifySignature(h.secret, body, c.GetHeader("X-Webhook-Signature")) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	case !h.allowUnsigned:
		middleware.LoggerFrom(c).Error().Msg("payment webhook rejected: no signing secret configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "webhook signing is not configured"})
		return
	}
	var req validation.WebhookRequest
	if err := validation.DecodeJSON(bytes.NewReader(body), &req); err != nil {
		fail(c, err)
		return
	}
	if !strings.EqualFold(req.Status, domain.TransactionStatusCompleted) {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	settled, err := h.svc.ConfirmPayment(c.Request.Context(), req.Reference, "webhook")
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			middleware.LoggerFrom(c).Warn().Str("reference", req.Reference).Msg("webhook for unknown reference")
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "settled": len(settled)})
}

// VerifySignature checks a hex HMAC-SHA256 of body under secret.
func VerifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimPrefix(signature, "sha256=")))
}
