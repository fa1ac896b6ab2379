package productattach_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/productattach/modules/productattach"
	"github.com/dmitrymomot/productattach/pkg/attachment"
	"github.com/dmitrymomot/productattach/pkg/backendurl"
	"github.com/dmitrymomot/productattach/pkg/file"
	"github.com/dmitrymomot/productattach/pkg/logger"
	"github.com/dmitrymomot/productattach/pkg/scopeconfig"
	"github.com/dmitrymomot/productattach/pkg/storemanager"
)

type envelope struct {
	Data  map[string]any             `json:"data"`
	Error *productattach.ErrorDetail `json:"error"`
}

func newServer(t *testing.T, opts ...productattach.Option) (http.Handler, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "media", "productattach")
	storage, err := file.NewLocalStorage(root, "https://shop.test/media/productattach")
	require.NoError(t, err)

	stores, err := storemanager.New([]storemanager.Store{
		{ID: 1, Code: "default", WebsiteID: 1, BaseMediaURL: "https://shop.test/media/", Default: true},
		{ID: 3, Code: "fr", WebsiteID: 2, BaseMediaURL: "https://fr.shop.test/media/"},
	})
	require.NoError(t, err)

	static := scopeconfig.NewStatic(map[string]string{attachment.XMLPathItemsPerPage: "20"})
	static.Set(attachment.XMLPathItemsPerPage, scopeconfig.ScopeWebsites, 2, "50")

	urls, err := backendurl.New("https://shop.test")
	require.NoError(t, err)

	helper := attachment.NewHelper(attachment.NewStore(storage), scopeconfig.NewResolver(static, stores), stores, urls)
	return productattach.New(helper, opts...).Handle(), root
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("stores file", func(t *testing.T) {
		t.Parallel()
		h, root := newServer(t)

		rec, body := do(t, h, multipartRequest(t, productattach.UploadField, "manual.pdf", []byte("%PDF-1.4")))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/m/a/manual.pdf", body.Data["file"])
		assert.Equal(t, "pdf", body.Data["file_ext"])
		assert.Equal(t, "m/a/manual.pdf", body.Data["path_for_db"])
		assert.Equal(t, "https://shop.test/media/productattach/m/a/manual.pdf", body.Data["url"])
		assert.FileExists(t, filepath.Join(root, "m", "a", "manual.pdf"))

		rec, body = do(t, h, multipartRequest(t, productattach.UploadField, "manual.pdf", []byte("%PDF-1.5")))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/m/a/manual_1.pdf", body.Data["file"])
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()
		h, _ := newServer(t)

		rec, body := do(t, h, multipartRequest(t, "attachment", "manual.pdf", []byte("x")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "no_upload", body.Error.Code)
		assert.NotEmpty(t, body.Error.RequestID)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		h, _ := newServer(t, productattach.WithMaxUploadSize(1024))

		rec, body := do(t, h, multipartRequest(t, productattach.UploadField, "big.pdf", bytes.Repeat([]byte("x"), 4096)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "file_too_large", body.Error.Code)
	})
}

func TestFiles(t *testing.T) {
	t.Parallel()
	h, root := newServer(t)

	rec, _ := do(t, h, httptest.NewRequest(http.MethodPut, "/files/sheet.pdf", strings.NewReader(`{"content":"aGVsbG8="}`)))
	require.Equal(t, http.StatusNoContent, rec.Code)

	data, err := os.ReadFile(filepath.Join(root, "s", "h", "sheet.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	rec, body := do(t, h, httptest.NewRequest(http.MethodGet, "/files/sheet.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body.Data["exists"])
	assert.Equal(t, "s/h/sheet.pdf", body.Data["path_for_db"])
	assert.Equal(t, "https://shop.test/media/productattach/s/h/sheet.pdf", body.Data["url"])

	rec, _ = do(t, h, httptest.NewRequest(http.MethodDelete, "/files?path=s/h/sheet.pdf", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoFileExists(t, filepath.Join(root, "s", "h", "sheet.pdf"))

	rec, body = do(t, h, httptest.NewRequest(http.MethodGet, "/files/sheet.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body.Data["exists"])

	t.Run("delete of missing or disallowed file is a no-op", func(t *testing.T) {
		for _, path := range []string{"n/o/nothing.pdf", "e/v/evil.exe", "../../etc/passwd.pdf"} {
			rec, _ := do(t, h, httptest.NewRequest(http.MethodDelete, "/files?path="+path, nil))
			assert.Equal(t, http.StatusNoContent, rec.Code, path)
		}
	})
}

func TestSaveFile_Errors(t *testing.T) {
	t.Parallel()
	h, _ := newServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{`, http.StatusBadRequest, "bad_request"},
		{"empty content", `{"content":""}`, http.StatusUnprocessableEntity, "validation_error"},
		{"invalid base64", `{"content":"***"}`, http.StatusUnprocessableEntity, "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, httptest.NewRequest(http.MethodPut, "/files/x.pdf", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()
	h, root := newServer(t)

	t.Run("default store", func(t *testing.T) {
		t.Parallel()
		rec, body := do(t, h, httptest.NewRequest(http.MethodGet, "/settings?id=9", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, root, body.Data["base_dir"])
		assert.Equal(t, "https://shop.test/media/productattach", body.Data["base_url"])
		assert.Equal(t, float64(20), body.Data["items_per_page"])
		assert.Equal(t, float64(1), body.Data["store_id"])
		assert.Equal(t, "https://shop.test/admin/productattach/index/products/id/9/", body.Data["products_grid_url"])
	})

	t.Run("store from header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/settings", nil)
		req.Header.Set(productattach.StoreHeader, "fr")
		rec, body := do(t, h, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://fr.shop.test/media/productattach", body.Data["base_url"])
		assert.Equal(t, float64(50), body.Data["items_per_page"])
		assert.Equal(t, float64(3), body.Data["store_id"])
	})

	t.Run("store from query is not carried into admin urls", func(t *testing.T) {
		t.Parallel()
		rec, body := do(t, h, httptest.NewRequest(http.MethodGet, "/settings?___store=3", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), body.Data["store_id"])
		assert.Equal(t, "https://shop.test/admin/productattach/index/products/", body.Data["products_grid_url"])
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/settings", nil)
		req.Header.Set(productattach.StoreHeader, "xx")
		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "store_not_found", body.Error.Code)
	})
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	h, _ := newServer(t)

	t.Run("generated when missing", func(t *testing.T) {
		t.Parallel()
		rec, _ := do(t, h, httptest.NewRequest(http.MethodGet, "/settings", nil))
		assert.Len(t, rec.Header().Get(productattach.RequestIDHeader), 36)
	})

	t.Run("valid id is reused", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/settings", nil)
		req.Header.Set(productattach.RequestIDHeader, "req_123-abc")
		rec, _ := do(t, h, req)
		assert.Equal(t, "req_123-abc", rec.Header().Get(productattach.RequestIDHeader))
	})

	t.Run("invalid id is replaced", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/settings", nil)
		req.Header.Set(productattach.RequestIDHeader, "bad id; drop table")
		rec, _ := do(t, h, req)
		got := rec.Header().Get(productattach.RequestIDHeader)
		assert.NotEqual(t, "bad id; drop table", got)
		assert.Len(t, got, 36)
	})

	t.Run("too long id is replaced", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/settings", nil)
		req.Header.Set(productattach.RequestIDHeader, strings.Repeat("a", 129))
		rec, _ := do(t, h, req)
		assert.Len(t, rec.Header().Get(productattach.RequestIDHeader), 36)
	})
}

func TestAccessLog(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(productattach.LogRequestID),
	)
	h, _ := newServer(t, productattach.WithLogger(log))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set(productattach.StoreHeader, "fr")
	req.Header.Set(productattach.RequestIDHeader, "req-42")
	rec, _ := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "fr", entry["store_id"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.InDelta(t, http.StatusOK, entry["status"], 0)
}

func TestLogRequestID(t *testing.T) {
	t.Parallel()

	_, ok := productattach.LogRequestID(context.Background())
	assert.False(t, ok)

	var got string
	handler := productattach.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		attr, ok := productattach.LogRequestID(r.Context())
		require.True(t, ok)
		assert.Equal(t, "request_id", attr.Key)
		got = attr.Value.String()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(productattach.RequestIDHeader, "abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", got)
}
