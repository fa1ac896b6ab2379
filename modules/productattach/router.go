package productattach

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/productattach/pkg/attachment"
	"github.com/dmitrymomot/productattach/pkg/logger"
)

// Module exposes the attachment helper over a JSON API.
type Module struct {
	h *handlers
}

// Option configures a Module.
type Option func(*Module)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.h.log = l
		}
	}
}

// WithMaxUploadSize limits the request body of uploads. Zero disables the limit.
func WithMaxUploadSize(n int64) Option {
	return func(m *Module) { m.h.maxUploadSize = n }
}

func New(helper *attachment.Helper, opts ...Option) *Module {
	m := &Module{h: &handlers{
		helper: helper,
		log:    slog.New(slog.DiscardHandler),
	}}
	for _, opt := range opts {
		opt(m)
	}
	m.h.log = m.h.log.With(logger.Component("productattach.http"))
	return m
}

// Handle returns the router of the module.
//
//	r := chi.NewRouter()
//	r.Mount("/productattach", productattach.New(helper).Handle())
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, CurrentStore, CurrentParams, AccessLog(m.h.log), middleware.Recoverer)

	r.Post("/upload", m.h.upload)
	r.Get("/settings", m.h.settings)
	r.Route("/files", func(r chi.Router) {
		r.Delete("/", m.h.deleteFile)
		r.Get("/{name}", m.h.fileInfo)
		r.Put("/{name}", m.h.saveFile)
	})

	return r
}
