package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithMemberID adds member ID to logger context
func (l *Logger) WithMemberID(memberID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("member_id", memberID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogReservationConfirmed logs a successful ticket upsert
func (l *Logger) LogReservationConfirmed(ctx context.Context, ticketID, liveID, memberID string, totalCount int) {
	l.Logger.InfoContext(ctx,
		"Reservation Confirmed",
		slog.String("ticket_id", ticketID),
		slog.String("live_id", liveID),
		slog.String("member_id", memberID),
		slog.Int("total_count", totalCount),
	)
}

// LogReservationCancelled logs a ticket cancellation
func (l *Logger) LogReservationCancelled(ctx context.Context, ticketID, liveID, memberID string, released int) {
	l.Logger.InfoContext(ctx,
		"Reservation Cancelled",
		slog.String("ticket_id", ticketID),
		slog.String("live_id", liveID),
		slog.String("member_id", memberID),
		slog.Int("released_seats", released),
	)
}

// LogCapacityRejected logs an upsert rejected by the capacity check
func (l *Logger) LogCapacityRejected(ctx context.Context, liveID, memberID string, requested int) {
	l.Logger.WarnContext(ctx,
		"Reservation Rejected: capacity",
		slog.String("live_id", liveID),
		slog.String("member_id", memberID),
		slog.Int("requested", requested),
	)
}

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, memberID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("member_id", memberID),
		slog.String("method", method),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// LogLinePush logs a LINE push delivery attempt
func (l *Logger) LogLinePush(ctx context.Context, memberID string, err error) {
	if err != nil {
		l.Logger.ErrorContext(ctx,
			"LINE Push Failed",
			slog.String("member_id", memberID),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Logger.InfoContext(ctx,
		"LINE Push Delivered",
		slog.String("member_id", memberID),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
