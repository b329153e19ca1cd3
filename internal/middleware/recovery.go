package middleware

import (
	"net/http"
	"runtime/debug"

	"blogfeed/internal/logger"
	helpers "blogfeed/internal/utils/helpres"

	"go.uber.org/zap"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithCtx(r.Context()).Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				helpers.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
