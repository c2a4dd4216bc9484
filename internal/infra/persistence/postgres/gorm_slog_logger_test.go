package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"shopfront/config"
	deliverycontext "shopfront/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newCapturingLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGormSlogLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name    string
		debug   bool
		elapsed time.Duration
		err     error
		want    string
	}{
		{name: "record not found is silent", err: gorm.ErrRecordNotFound},
		{name: "duplicate key is a warning", err: errors.WithStack(gorm.ErrDuplicatedKey), want: "GORM constraint violation"},
		{name: "fk violation is a warning", err: gorm.ErrForeignKeyViolated, want: "GORM constraint violation"},
		{name: "driver failure", err: errors.New("connection reset"), want: "GORM query failed"},
		{name: "slow query", elapsed: time.Second, want: "GORM slow query"},
		{name: "fast query outside debug", elapsed: time.Millisecond},
		{name: "fast query in debug", debug: true, elapsed: time.Millisecond, want: "GORM query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			l := newGormSlogLogger(newCapturingLogger(&buf), cfg)
			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), query, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), `"msg":"`+tt.want+`"`)
			assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
		})
	}
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	l := newGormSlogLogger(newCapturingLogger(&base), &config.Config{})

	ctx := deliverycontext.WithLogger(context.Background(), newCapturingLogger(&scoped).With(slog.String("request_id", "r-1")))
	l.Error(ctx, "boom %d", 42)

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), `"request_id":"r-1"`)
	assert.Contains(t, scoped.String(), `"message":"boom 42"`)
}

func TestGormSlogLogger_SlowThresholdFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.SlowQueryThreshold = 5 * time.Second

	l, ok := newGormSlogLogger(slog.Default(), cfg).(*gormSlogLogger)

	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, l.slowThreshold)
}
