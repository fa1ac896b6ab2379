package productattach

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/productattach/pkg/attachment"
)

// UploadField is the multipart field carrying the uploaded file.
const UploadField = "file"

var errBadRequest = errors.New("bad request")

type uploadResponse struct {
	File      string `json:"file"`
	FileExt   string `json:"file_ext"`
	PathForDB string `json:"path_for_db"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`
	MIMEType  string `json:"mime_type"`
}

type saveFileRequest struct {
	Content string `json:"content"`
}

type fileResponse struct {
	Name      string `json:"name"`
	Exists    bool   `json:"exists"`
	PathForDB string `json:"path_for_db"`
	URL       string `json:"url"`
}

type settingsResponse struct {
	BaseDir         string `json:"base_dir"`
	BaseURL         string `json:"base_url"`
	ItemsPerPage    int    `json:"items_per_page"`
	StoreID         int    `json:"store_id"`
	ProductsGridURL string `json:"products_grid_url"`
}

type handlers struct {
	helper        *attachment.Helper
	maxUploadSize int64
	log           *slog.Logger
}

func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var rec attachment.Record
	res, err := h.helper.UploadFile(r.Context(), r, UploadField, &rec)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, uploadResponse{
		File:      rec.File,
		FileExt:   rec.FileExt,
		PathForDB: rec.PathForDB(),
		URL:       h.helper.Store().URL(res.Path),
		Size:      res.Size,
		MIMEType:  res.MIMEType,
	})
}

func (h *handlers) saveFile(w http.ResponseWriter, r *http.Request) {
	name, err := fileName(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req saveFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.log, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	if err := h.helper.SaveFile(r.Context(), name, req.Content); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) fileInfo(w http.ResponseWriter, r *http.Request) {
	name, err := fileName(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	path, err := h.helper.FilePathForDB(name)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, fileResponse{
		Name:      name,
		Exists:    h.helper.FileExists(r.Context(), name),
		PathForDB: path,
		URL:       h.helper.Store().URL(path),
	})
}

func (h *handlers) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.helper.DeleteFile(r.Context(), r.URL.Query().Get("path")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) settings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := settingsResponse{BaseDir: h.helper.BaseDir()}

	var err error
	if resp.BaseURL, err = h.helper.BaseURL(ctx); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if resp.ItemsPerPage, err = h.helper.ItemsPerPage(ctx); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if resp.StoreID, err = h.helper.StoreID(ctx); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if resp.ProductsGridURL, err = h.helper.ProductsGridURL(ctx); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

func fileName(r *http.Request) (string, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if name == "" {
		return "", attachment.ErrInvalidInput
	}
	return name, nil
}
