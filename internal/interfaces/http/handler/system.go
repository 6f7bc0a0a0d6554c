package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/financetracking/backend/internal/domain/identity"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/financetracking/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SignatureHeader carries the HMAC-SHA256 signature of the webhook body
const SignatureHeader = "X-Webhook-Signature"

// SystemHandler receives identity-provider notifications and feeds
// them into the event bus. A non-2xx response tells the provider to
// redeliver, so handler failures must surface as errors here.
type SystemHandler struct {
	BaseHandler
	bus    shared.EventBus
	secret string
	logger *zap.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(bus shared.EventBus, webhookSecret string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		bus:    bus,
		secret: webhookSecret,
		logger: logger,
	}
}

// RegisterRoutes registers the webhook endpoint. It is authenticated
// by the shared webhook secret, not by user tokens.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/system/events", h.HandleEvent)
}

// SystemEventRequest is the notification payload sent by the identity
// provider. EventID is the provider's delivery ID and keys redelivery
// deduplication.
type SystemEventRequest struct {
	EventID    uuid.UUID  `json:"event_id"`
	EventType  string     `json:"event_type"`
	UserID     uuid.UUID  `json:"user_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// HandleEvent verifies the signature and dispatches the notification
func (h *SystemHandler) HandleEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if !h.verifySignature(body, c.GetHeader(SignatureHeader)) {
		h.logger.Warn("Webhook signature verification failed",
			zap.String("remote_addr", c.ClientIP()))
		h.Unauthorized(c, "Invalid webhook signature")
		return
	}

	var req SystemEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid notification payload")
		return
	}
	if req.EventID == uuid.Nil || req.UserID == uuid.Nil {
		h.BadRequest(c, "Notification requires event_id and user_id")
		return
	}

	event, err := h.toDomainEvent(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.bus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Notification processing failed",
			zap.String("event_id", req.EventID.String()),
			zap.String("event_type", req.EventType),
			zap.Error(err))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal,
			"Notification processing failed, delivery will be retried")
		return
	}

	h.Success(c, gin.H{"event_id": req.EventID})
}

// toDomainEvent maps the payload to a domain event, keeping the
// provider's delivery ID so redeliveries are recognized
func (h *SystemHandler) toDomainEvent(req SystemEventRequest) (shared.DomainEvent, error) {
	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	switch req.EventType {
	case identity.EventTypeUserCreated:
		event := identity.NewUserCreatedEvent(req.UserID, req.Username, req.Email)
		event.ID = req.EventID
		event.Timestamp = occurredAt
		return event, nil
	case identity.EventTypeUserDeleted:
		event := identity.NewUserDeletedEvent(req.UserID)
		event.ID = req.EventID
		event.Timestamp = occurredAt
		return event, nil
	}
	return nil, shared.NewDomainError("BAD_REQUEST", "Unknown event type: "+req.EventType)
}

// verifySignature checks the HMAC-SHA256 hex signature of the raw body
func (h *SystemHandler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignWebhookBody computes the signature the provider attaches to a
// notification body. Exported for tests and local tooling.
func SignWebhookBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
