package api

import (
	"net/http"
	"time"

	"github.com/moneymanager/money_manager/internal/contextutil"
	"github.com/moneymanager/money_manager/logging"
	"github.com/sirupsen/logrus"
)

const TraceIDHeader = "X-Trace-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// WithTrace tags every request with a trace id, taken from X-Trace-ID when the client sent one.
func WithTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = contextutil.NewTraceID()
		}
		w.Header().Set(TraceIDHeader, traceID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(contextutil.WithTraceID(r.Context(), traceID)))

		logging.Logger.WithFields(logrus.Fields{
			"trace_id": traceID,
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
