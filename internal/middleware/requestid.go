package middleware

import (
	"net/http"

	"blogfeed/internal/reqctx"

	"github.com/google/uuid"
)

// RequestID генерирует или пробрасывает X-Request-Id и кладёт его в контекст.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", rid)
		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), rid)))
	})
}
