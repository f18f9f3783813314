package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/logger"
	"galerie/internal/shared/utils"
)

// WebhookHandler receives Stripe events. Events are deduplicated per tenant
// through the stripe_events table, so a redelivered event is acknowledged
// without being applied twice.
type WebhookHandler struct {
	db            *gorm.DB
	webhookSecret string
	log           logger.Interface
}

func NewWebhookHandler(db *gorm.DB, webhookSecret string, log logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		db:            db,
		webhookSecret: webhookSecret,
		log:           log.With("component", "http.webhook"),
	}
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ClientReferenceID string `json:"client_reference_id"`
		} `json:"object"`
	} `json:"data"`
}

func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read body"))
		return
	}

	if h.webhookSecret != "" {
		if !verifyStripeSignature(c.GetHeader("Stripe-Signature"), body, h.webhookSecret) {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid webhook signature"))
			return
		}
	}

	var event stripeEvent
	if err := json.Unmarshal(body, &event); err != nil || event.ID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid event payload"))
		return
	}

	tdb := tenantDB(c, h.db)
	ctx := c.Request.Context()

	created, err := repository.NewStripeEventRepository(tdb).RecordIfNew(ctx, &models.StripeEventModel{
		EventID:   event.ID,
		EventType: event.Type,
		Payload:   body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !created {
		utils.SuccessResponse(c, http.StatusOK, "already processed", nil)
		return
	}

	if event.Type == "checkout.session.completed" {
		reference := event.Data.Object.ClientReferenceID
		if reference == "" {
			h.log.Warnw("completed session without client_reference_id", "event_id", event.ID)
		} else if err := h.markPaid(c, tdb, reference); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "processed", nil)
}

func (h *WebhookHandler) markPaid(c *gin.Context, tdb repository.TenantDB, reference string) error {
	ctx := c.Request.Context()
	orders := repository.NewOrderRepository(tdb)

	order, err := orders.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	if order == nil {
		h.log.Warnw("payment for unknown order reference", "reference", reference)
		return nil
	}

	if err := orders.UpdateStatusByReference(ctx, reference, "paid"); err != nil {
		return err
	}
	return repository.NewNotificationRepository(tdb).Create(ctx, &models.NotificationModel{
		UserID: order.UserID,
		Title:  "Payment received",
		Body:   "Your order " + reference + " has been paid",
	})
}

// verifyStripeSignature checks the v1 HMAC-SHA256 signature from the
// Stripe-Signature header against the raw body.
func verifyStripeSignature(header string, body []byte, secret string) bool {
	var timestamp, signature string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signature = value
		}
	}
	if timestamp == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
