package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики:
// - http_requests_total: запросы по шаблону пути, методу и статусу
// - http_request_duration_seconds: длительность запросов
// - blog_reads_total: успешные инкременты счётчика прочтений
// - blog_store_errors_total: ошибки хранилища по операции сервиса
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP-запросы по пути, методу и статусу"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "Длительность HTTP-запросов (сек)", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	BlogReads = prometheus.NewCounter(prometheus.CounterOpts{Name: "blog_reads_total", Help: "Прочтения постов"})
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "blog_store_errors_total", Help: "Ошибки хранилища по операции"},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, BlogReads, StoreErrors)
}

// Middleware пишет базовые HTTP-метрики. Путь берётся из шаблона маршрута mux.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		HTTPLatency.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, r.Method, strconv.Itoa(sw.status)).Inc()
	})
}

// Handler: стандартный экспортёр Prometheus.
func Handler() http.Handler { return promhttp.Handler() }

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
