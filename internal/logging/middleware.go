package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// NewMiddleware returns a huma middleware that installs a LogData on the
// request context and emits one completion line per request. Handlers add
// their own fields and timings through GetLogData.
func NewMiddleware(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(logger)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)
		if op := ctx.Operation(); op != nil {
			logData.AddData("operation", op.OperationID)
		}

		endTimer := logData.AddTiming("durationMs")
		next(huma.WithValue(ctx, logDataContextKey{}, logData))
		endTimer()

		logData.AddData("status", ctx.Status())
		if ctx.Status() >= 500 {
			logData.Log().Error("Handler.Complete")
			return
		}
		logData.Log().Info("Handler.Complete")
	}
}
