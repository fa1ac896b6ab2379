package attachment

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/productattach/pkg/logger"
	"github.com/dmitrymomot/productattach/pkg/scopeconfig"
	"github.com/dmitrymomot/productattach/pkg/storemanager"
)

const (
	// XMLPathItemsPerPage is the config path of the attachments grid page size.
	XMLPathItemsPerPage = "productattach/view/items_per_page"
	// MediaPath is the folder under the media directory attachments live in.
	MediaPath = "productattach"
	// ProductsGridRoute is the admin route of the attachment products grid.
	ProductsGridRoute = "productattach/index/products"
)

// ScopeConfig returns configuration values resolved for a scope.
type ScopeConfig interface {
	Value(ctx context.Context, path string, scope scopeconfig.Scope, scopeID int) (string, error)
}

// StoreManager resolves the store the current request belongs to.
type StoreManager interface {
	CurrentStore(ctx context.Context) (*storemanager.Store, error)
}

// BackendURL builds admin URLs for named routes.
type BackendURL interface {
	URL(ctx context.Context, route string, params map[string]any) (string, error)
}

// Helper bundles the attachment store with the store, config and URL
// collaborators admin handlers need.
type Helper struct {
	store    *Store
	uploader *Uploader
	config   ScopeConfig
	stores   StoreManager
	urls     BackendURL
	log      *slog.Logger
}

// HelperOption configures a Helper.
type HelperOption func(*Helper)

// WithHelperLogger sets the logger.
func WithHelperLogger(l *slog.Logger) HelperOption {
	return func(h *Helper) {
		if l != nil {
			h.log = l
		}
	}
}

// WithUploader replaces the default uploader.
func WithUploader(u *Uploader) HelperOption {
	return func(h *Helper) {
		if u != nil {
			h.uploader = u
		}
	}
}

// NewHelper creates a Helper. Unless WithUploader is given, uploads use an
// Uploader with renaming, dispersion and folder creation enabled.
func NewHelper(store *Store, config ScopeConfig, stores StoreManager, urls BackendURL, opts ...HelperOption) *Helper {
	h := &Helper{
		store:  store,
		config: config,
		stores: stores,
		urls:   urls,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("attachment.helper"))
	if h.uploader == nil {
		h.uploader = NewUploader(store,
			WithAllowRenameFiles(true),
			WithFilesDispersion(true),
			WithAllowCreateFolders(true),
			WithUploaderLogger(h.log),
		)
	}
	return h
}

// Store returns the underlying attachment store.
func (h *Helper) Store() *Store {
	return h.store
}

// UploadFile stores the file sent in field fieldID and records its name and
// extension on model. The model is left untouched when the upload fails.
func (h *Helper) UploadFile(ctx context.Context, r *http.Request, fieldID string, model Attachable) (*UploadResult, error) {
	res, err := h.uploader.Upload(ctx, r, fieldID)
	if err != nil {
		h.log.WarnContext(ctx, "upload failed", slog.String("field", fieldID), logger.Error(err))
		return nil, err
	}

	model.SetFile(res.FileName)
	model.SetFileExt(res.Extension)
	return res, nil
}

// BaseDir returns the media root attachments are stored under.
func (h *Helper) BaseDir() string {
	return h.store.Root()
}

// BaseURL returns the media URL of the current store joined with MediaPath.
func (h *Helper) BaseURL(ctx context.Context) (string, error) {
	store, err := h.stores.CurrentStore(ctx)
	if err != nil {
		return "", err
	}
	return store.BaseMediaURL + MediaPath, nil
}

// ItemsPerPage returns the configured grid page size for the current store.
// A missing or non-numeric value yields 0; negative values are made positive.
func (h *Helper) ItemsPerPage(ctx context.Context) (int, error) {
	store, err := h.stores.CurrentStore(ctx)
	if err != nil {
		return 0, err
	}

	value, err := h.config.Value(ctx, XMLPathItemsPerPage, scopeconfig.ScopeStores, store.ID)
	if err != nil {
		if errors.Is(err, scopeconfig.ErrNotFound) {
			return 0, nil
		}
		h.log.ErrorContext(ctx, "failed to read items per page",
			logger.ConfigPath(XMLPathItemsPerPage),
			logger.StoreID(store.ID),
			logger.Error(err),
		)
		return 0, err
	}

	n := leadingInt(value)
	switch {
	case n == math.MinInt:
		n = math.MaxInt
	case n < 0:
		n = -n
	}
	return n, nil
}

// StoreID returns the id of the current store.
func (h *Helper) StoreID(ctx context.Context) (int, error) {
	store, err := h.stores.CurrentStore(ctx)
	if err != nil {
		return 0, err
	}
	return store.ID, nil
}

// ProductsGridURL returns the admin URL of the products grid, keeping the
// parameters of the current request.
func (h *Helper) ProductsGridURL(ctx context.Context) (string, error) {
	return h.urls.URL(ctx, ProductsGridRoute, map[string]any{"_current": true})
}

// CustomerGroup joins customer group ids with commas.
func (h *Helper) CustomerGroup(ids []string) string {
	return strings.Join(ids, ",")
}

// Stores joins store ids with commas.
func (h *Helper) Stores(ids []string) string {
	return strings.Join(ids, ",")
}

func (h *Helper) FileExists(ctx context.Context, filename string) bool {
	return h.store.Exists(ctx, filename)
}

func (h *Helper) SaveFile(ctx context.Context, filename, contentBase64 string) error {
	return h.store.Save(ctx, filename, contentBase64)
}

func (h *Helper) DeleteFile(ctx context.Context, path string) error {
	return h.store.Delete(ctx, path)
}

func (h *Helper) FilePathForDB(filename string) (string, error) {
	return PathForDB(filename)
}

func (h *Helper) FileDispersionPath(filename string) (string, error) {
	return DispersionPath(filename)
}

func (h *Helper) DispersionFolderPath(filename string) (string, error) {
	return h.store.DispersionFolderPath(filename)
}

// leadingInt parses the integer prefix of s the way loosely typed config
// values are read: surrounding spaces are ignored, an optional sign is
// accepted and parsing stops at the first non-digit. No digits yields 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
