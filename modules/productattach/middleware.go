package productattach

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/productattach/pkg/backendurl"
	"github.com/dmitrymomot/productattach/pkg/logger"
	"github.com/dmitrymomot/productattach/pkg/storemanager"
)

const (
	RequestIDHeader = "X-Request-ID"
	StoreHeader     = "X-Store"
	StoreParam      = "___store"
)

var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// RequestID reuses a well-formed X-Request-ID header or generates a UUID,
// stores it in the context and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// CurrentStore puts the store requested through the X-Store header or the
// ___store query parameter into the context. The header wins.
func CurrentStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := r.Header.Get(StoreHeader)
		if store == "" {
			store = r.URL.Query().Get(StoreParam)
		}
		next.ServeHTTP(w, r.WithContext(storemanager.WithCurrent(r.Context(), store)))
	})
}

// CurrentParams keeps the query parameters of the request so admin URLs
// built with "_current" carry them over. Multi-valued parameters keep
// their first value.
func CurrentParams(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		params := make(map[string]string, len(query))
		for k, v := range query {
			if k == StoreParam || len(v) == 0 {
				continue
			}
			params[k] = v[0]
		}
		next.ServeHTTP(w, r.WithContext(backendurl.WithCurrentParams(r.Context(), params)))
	})
}

// AccessLog logs one line per request, with the requested store when one
// was given. It must run after CurrentStore.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			}
			if store, ok := storemanager.CurrentFromContext(r.Context()); ok {
				attrs = append(attrs, logger.StoreID(store))
			}
			log.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}
