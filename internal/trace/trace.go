package trace

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/qiniu/x/xlog"
)

// TraceID 表示一次 prepare 运行的追踪 ID
type TraceID string

const TracePrefix = "prepare"

// NewTraceID 创建新的追踪 ID，形如 prepare_<event>_<8位随机>
func NewTraceID(eventType string) TraceID {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if eventType == "" {
		return TraceID(fmt.Sprintf("%s_%s", TracePrefix, short))
	}
	return TraceID(fmt.Sprintf("%s_%s_%s", TracePrefix, eventType, short))
}

type contextKey string

const traceLoggerKey contextKey = "trace_logger"

// NewContext 创建带有追踪日志器的上下文
func NewContext(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, traceLoggerKey, xlog.New(string(traceID)))
}

// FromContext returns the run logger, or a logger without an id when the
// context carries none.
func FromContext(ctx context.Context) *xlog.Logger {
	if logger, ok := ctx.Value(traceLoggerKey).(*xlog.Logger); ok {
		return logger
	}
	return xlog.New("")
}

// GetTraceID 从上下文中获取追踪 ID
func GetTraceID(ctx context.Context) TraceID {
	if logger, ok := ctx.Value(traceLoggerKey).(*xlog.Logger); ok {
		return TraceID(logger.ReqId)
	}
	return ""
}
