package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestNewGormLogger(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Warn)

	assert.NotNil(t, gl)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Warn)

	changed := gl.LogMode(gormlogger.Info).(*GormLogger)

	assert.Equal(t, gormlogger.Info, changed.logLevel)
	// Original must be unchanged; GORM shares logger instances.
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	fc := func() (string, int64) {
		return "SELECT * FROM batches WHERE hotel_id = $1", 3
	}

	t.Run("logs errors with the statement", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), fc, errors.New("deadlock detected"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "SQL Error", entry.Message)
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	})

	t.Run("suppresses record not found by default", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("reports record not found when configured", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))

		gl.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 1, logs.Len())
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Contains(t, entry.Message, "SLOW SQL")
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), fc, errors.New("ignored"))

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("annotates statements with request identity from context", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)

		ctx := context.Background()
		ctx, _ = WithRequestID(ctx, zap.NewNop(), "req-123")
		ctx, _ = WithHotelID(ctx, zap.NewNop(), "hotel-9")
		ctx, _ = WithUserID(ctx, zap.NewNop(), "user-7")

		gl.Trace(ctx, time.Now(), fc, nil)

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "req-123", fields["request_id"])
		assert.Equal(t, "hotel-9", fields["hotel_id"])
		assert.Equal(t, "user-7", fields["user_id"])
	})

	t.Run("omits identity fields for a bare context", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)

		gl.Trace(context.Background(), time.Now(), fc, nil)

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		_, hasRequestID := fields["request_id"]
		assert.False(t, hasRequestID)
		assert.Equal(t, int64(3), fields["rows"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
