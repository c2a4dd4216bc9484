// Package handler contains the Pub/Sub push handlers of the shipment worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"shopfront/config"
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/constants"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/service"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage is the envelope Pub/Sub POSTs to a push subscription.
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

var errMalformedPush = errors.New("malformed push message")

// tokenVerifier checks the OIDC token on a push request.
type tokenVerifier func(req *http.Request) error

// PushHandler registers orders left Pending by a carrier failure.
type PushHandler struct {
	verifyPushAuth bool
	verify         tokenVerifier
	logger         *slog.Logger
	settlement     usecase.SettlementUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Settlement usecase.SettlementUsecase
}

// NewPushHandler only verifies push tokens for Google Pub/Sub outside develop.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	pubsubCfg := params.Config.PubSub
	verifyPushAuth := pubsubCfg != nil &&
		pubsubCfg.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	audience := ""
	if pubsubCfg != nil {
		audience = pubsubCfg.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		verify:         googleTokenVerifier(audience),
		logger:         params.Logger,
		settlement:     params.Settlement,
	}
}

// HandlePush answers 503 while the carrier is unavailable so Pub/Sub redelivers,
// and acknowledges everything a redelivery cannot fix.
func (h *PushHandler) HandlePush(c echo.Context) error {
	if h.verifyPushAuth {
		if err := h.verify(c.Request()); err != nil {
			h.logger.Warn("[Worker] Rejected push request", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	pushMsg, event, err := decodePush(c)
	if err != nil {
		h.logger.Error("[Worker] Dropping undecodable push", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	ctx := c.Request().Context()
	requestID := h.extractRequestID(ctx, pushMsg, event)
	reqLogger := h.logger.With(
		slog.String("request_id", requestID),
		slog.String("order_id", event.OrderID),
		slog.String("message_id", pushMsg.Message.MessageID),
	)
	ctx = deliverycontext.WithLogger(deliverycontext.WithRequestID(ctx, requestID), reqLogger)

	reqLogger.Info("[Worker] Retrying shipment", slog.String("reason", event.Reason))

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		reqLogger.Error("[Worker] Acknowledging event with bad order id", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	order, err := h.settlement.RetryShipment(ctx, orderID)
	status := ackStatus(err)
	if err != nil {
		reqLogger.Error("[Worker] Shipment retry failed",
			slog.Any("error", err),
			slog.Bool("redeliver", status != http.StatusOK),
		)

		return c.NoContent(status)
	}

	reqLogger.Info("[Worker] Shipment registered",
		slog.String("carrier", order.Carrier),
		slog.String("tracking_number", order.TrackingNumber),
	)

	return c.NoContent(http.StatusOK)
}

// ackStatus maps a retry outcome to the push response. A missing order or one that
// already left Pending is acknowledged; anything else is redelivered.
func ackStatus(err error) int {
	switch {
	case err == nil,
		errors.Is(err, domainerrors.ErrNotFound),
		errors.Is(err, domainerrors.ErrConflict):
		return http.StatusOK
	default:
		return http.StatusServiceUnavailable
	}
}

func decodePush(c echo.Context) (*PubSubMessage, *service.ShipmentRetryEvent, error) {
	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		return nil, nil, errors.Wrap(errMalformedPush, err.Error())
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, nil, errors.Wrap(errMalformedPush, "data is not base64")
	}

	var event service.ShipmentRetryEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, nil, errors.Wrap(errMalformedPush, "data is not a shipment retry event")
	}

	return &pushMsg, &event, nil
}

// extractRequestID prefers the message attribute, then the event, then the inbound context.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.ShipmentRetryEvent) string {
	for _, candidate := range []string{
		pushMsg.Message.Attributes["request_id"],
		event.RequestID,
		deliverycontext.GetRequestIDFromContext(ctx),
	} {
		if candidate != "" {
			return candidate
		}
	}

	return uuid.NewString()
}

// googleTokenVerifier validates the Google-signed OIDC token attached to authenticated pushes.
func googleTokenVerifier(audience string) tokenVerifier {
	return func(req *http.Request) error {
		token, ok := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
		if !ok || token == "" {
			return errors.New("missing bearer token")
		}

		aud := audience
		if aud == "" {
			aud = pushURL(req)
		}

		payload, err := idtoken.Validate(req.Context(), token, aud)
		if err != nil {
			return errors.Wrap(err, "failed to validate token")
		}

		if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
			return errors.Errorf("invalid issuer: %s", payload.Issuer)
		}
		if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
			return errors.New("email not verified")
		}

		return nil
	}
}

// pushURL rebuilds the URL Pub/Sub pushed to, honouring a TLS-terminating proxy.
func pushURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil || strings.EqualFold(req.Header.Get(echo.HeaderXForwardedProto), "https") {
		scheme = "https"
	}

	return scheme + "://" + req.Host + req.URL.Path
}
