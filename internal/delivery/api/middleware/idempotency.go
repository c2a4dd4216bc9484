package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"shopfront/config"
	"shopfront/internal/delivery/api/response"
	deliverycontext "shopfront/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key of a retryable POST.
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// IdempotentReplayedHeader is set on responses served from the record store.
	IdempotentReplayedHeader = "Idempotent-Replayed"

	idempotencyKeyPrefix = "idempotency:"
)

type idempotencyStatus string

const (
	idempotencyProcessing idempotencyStatus = "processing"
	idempotencyCompleted  idempotencyStatus = "completed"
)

// idempotencyRecord is stored as JSON under idempotency:<user>:<key>.
type idempotencyRecord struct {
	Status       idempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code"`
	ResponseBody string            `json:"response_body"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RedisClient is the subset of go-redis used for idempotency records.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyMiddlewareParams holds dependencies for IdempotencyMiddleware, injected by Fx.
type IdempotencyMiddlewareParams struct {
	fx.In

	Redis  *redis.Client `optional:"true"`
	Config *config.Config
	Logger *slog.Logger
}

// IdempotencyMiddleware replays the stored response of a POST that is retried with the same
// X-Idempotency-Key. Requests without the header, or with Redis unconfigured, pass through.
type IdempotencyMiddleware struct {
	store         RedisClient
	ttl           time.Duration
	processingTTL time.Duration
	logger        *slog.Logger
}

// NewIdempotencyMiddleware is the constructor for IdempotencyMiddleware.
func NewIdempotencyMiddleware(params IdempotencyMiddlewareParams) *IdempotencyMiddleware {
	m := &IdempotencyMiddleware{logger: params.Logger}
	if params.Redis != nil && params.Config.Redis != nil {
		m.store = params.Redis
		m.ttl = params.Config.Redis.IdempotencyTTL
		m.processingTTL = params.Config.Redis.ProcessingTTL
	}

	return m
}

// Handle must run after Authenticate so records are scoped to the caller.
func (m *IdempotencyMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get(IdempotencyKeyHeader)
		if m.store == nil || key == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return response.BindingError(c, "Failed to read request body")
		}
		c.Request().Body = io.NopCloser(bytes.NewReader(body))

		userID, _ := GetUserID(c)
		redisKey := idempotencyKeyPrefix + userID.String() + ":" + key
		requestHash := hashRequest(c.Request().Method, c.Path(), body)

		existing, err := m.load(ctx, redisKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Warn("Idempotency store unavailable, processing without it", slog.Any("error", err))

			return next(c)
		}
		if existing != nil {
			return m.replay(c, existing, requestHash)
		}

		record := &idempotencyRecord{
			Status:      idempotencyProcessing,
			RequestHash: requestHash,
			CreatedAt:   time.Now().UTC(),
		}
		acquired, err := m.acquire(ctx, redisKey, record)
		if err != nil {
			logger.Warn("Idempotency store unavailable, processing without it", slog.Any("error", err))

			return next(c)
		}
		if !acquired {
			// Lost the SETNX race to a concurrent request with the same key.
			existing, err := m.load(ctx, redisKey)
			if err != nil || existing == nil {
				return response.Error(c, http.StatusConflict, "REQUEST_IN_PROGRESS", "A request with this idempotency key is already being processed")
			}

			return m.replay(c, existing, requestHash)
		}

		original := c.Response().Writer
		capture := &captureWriter{ResponseWriter: original}
		c.Response().Writer = capture
		err = next(c)
		c.Response().Writer = original

		if err != nil || !c.Response().Committed {
			// The error handler renders after this middleware returns, so nothing was captured.
			if delErr := m.store.Del(context.WithoutCancel(ctx), redisKey).Err(); delErr != nil {
				logger.Warn("Failed to release idempotency key", slog.Any("error", delErr))
			}

			return err
		}

		record.Status = idempotencyCompleted
		record.ResponseCode = c.Response().Status
		record.ResponseBody = capture.body.String()
		if saveErr := m.save(context.WithoutCancel(ctx), redisKey, record); saveErr != nil {
			logger.Warn("Failed to store idempotent response", slog.Any("error", saveErr))
		}

		return nil
	}
}

func (m *IdempotencyMiddleware) replay(c echo.Context, record *idempotencyRecord, requestHash string) error {
	if record.RequestHash != requestHash {
		return response.Error(c, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED", "Idempotency key already used with a different request")
	}
	if record.Status == idempotencyProcessing {
		return response.Error(c, http.StatusConflict, "REQUEST_IN_PROGRESS", "A request with this idempotency key is already being processed")
	}

	c.Response().Header().Set(IdempotentReplayedHeader, "true")

	return c.JSONBlob(record.ResponseCode, []byte(record.ResponseBody))
}

func (m *IdempotencyMiddleware) load(ctx context.Context, key string) (*idempotencyRecord, error) {
	raw, err := m.store.Get(ctx, key).Result()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var record idempotencyRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, errors.Wrap(err, "corrupt idempotency record")
	}

	return &record, nil
}

func (m *IdempotencyMiddleware) acquire(ctx context.Context, key string, record *idempotencyRecord) (bool, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return false, errors.WithStack(err)
	}

	ok, err := m.store.SetNX(ctx, key, string(data), m.processingTTL).Result()

	return ok, errors.WithStack(err)
}

func (m *IdempotencyMiddleware) save(ctx context.Context, key string, record *idempotencyRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(m.store.Set(ctx, key, string(data), m.ttl).Err())
}

func hashRequest(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)

	return hex.EncodeToString(h.Sum(nil))
}

// captureWriter tees the response body so it can be stored.
type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)

	return w.ResponseWriter.Write(b)
}
