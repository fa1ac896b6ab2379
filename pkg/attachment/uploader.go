package attachment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/productattach/pkg/file"
	"github.com/dmitrymomot/productattach/pkg/logger"
)

// DefaultMaxMemory is the part of a multipart body kept in memory while parsing.
const DefaultMaxMemory = 32 << 20

// UploadResult describes a file accepted by the Uploader.
type UploadResult struct {
	// FileName is the stored name including the dispersion prefix, e.g. "/m/a/manual_1.pdf".
	FileName string
	// Extension of the client filename, without the dot.
	Extension string
	// Path is FileName relative to the media root without the leading separator.
	Path     string
	Size     int64
	MIMEType string
}

// Uploader accepts multipart uploads into a Store.
type Uploader struct {
	store              *Store
	allowRename        bool
	dispersion         bool
	allowCreateFolders bool
	caseInsensitive    bool
	maxSize            int64
	allowedExtensions  []string
	log                *slog.Logger
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithAllowRenameFiles picks a free name ("name_1.ext", "name_2.ext", ...)
// instead of overwriting an existing file.
func WithAllowRenameFiles(allow bool) UploaderOption {
	return func(u *Uploader) { u.allowRename = allow }
}

// WithFilesDispersion stores files under their dispersion folder.
// When disabled files go straight into the media root.
func WithFilesDispersion(enabled bool) UploaderOption {
	return func(u *Uploader) { u.dispersion = enabled }
}

// WithAllowCreateFolders permits creating the destination folder.
// When disabled the folder must already exist.
func WithAllowCreateFolders(allow bool) UploaderOption {
	return func(u *Uploader) { u.allowCreateFolders = allow }
}

// WithCaseInsensitiveFilenames lower-cases stored names when dispersion is
// enabled, so the name matches the folders it is dispersed into.
func WithCaseInsensitiveFilenames(enabled bool) UploaderOption {
	return func(u *Uploader) { u.caseInsensitive = enabled }
}

// WithMaxFileSize rejects files larger than n bytes. Zero disables the limit.
func WithMaxFileSize(n int64) UploaderOption {
	return func(u *Uploader) { u.maxSize = n }
}

// WithAllowedExtensions restricts uploads to the given extensions (case-insensitive).
func WithAllowedExtensions(exts ...string) UploaderOption {
	return func(u *Uploader) {
		u.allowedExtensions = u.allowedExtensions[:0]
		for _, ext := range exts {
			u.allowedExtensions = append(u.allowedExtensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
		}
	}
}

// WithUploaderLogger sets the logger.
func WithUploaderLogger(l *slog.Logger) UploaderOption {
	return func(u *Uploader) {
		if l != nil {
			u.log = l
		}
	}
}

// NewUploader creates an Uploader writing into store.
// Renaming, dispersion, folder creation and case-insensitive names are
// enabled by default.
func NewUploader(store *Store, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		store:              store,
		allowRename:        true,
		dispersion:         true,
		allowCreateFolders: true,
		caseInsensitive:    true,
		log:                slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.log = u.log.With(logger.Component("attachment.uploader"))
	return u
}

// Upload stores the file sent in the multipart field fieldID of r.
func (u *Uploader) Upload(ctx context.Context, r *http.Request, fieldID string) (*UploadResult, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, errors.Join(ErrNoUpload, err)
		}
	}

	files := r.MultipartForm.File[fieldID]
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: field %q", ErrNoUpload, fieldID)
	}

	return u.Save(ctx, files[0])
}

// Save stores an already parsed multipart file.
func (u *Uploader) Save(ctx context.Context, fh *multipart.FileHeader) (*UploadResult, error) {
	if err := file.ValidateSize(fh, u.maxSize); err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}

	ext := file.Extension(fh.Filename)
	if len(u.allowedExtensions) > 0 && !slices.Contains(u.allowedExtensions, strings.ToLower(ext)) {
		return nil, fmt.Errorf("%w: %q", ErrExtensionNotAllowed, ext)
	}

	name, err := file.CorrectFileName(fh.Filename)
	if err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}

	folder := ""
	if u.dispersion {
		if u.caseInsensitive {
			name = strings.ToLower(name)
		}
		if folder, err = DispersionPath(name); err != nil {
			return nil, err
		}
	}

	if !u.allowCreateFolders && folder != "" && !u.store.storage.Exists(ctx, folder) {
		return nil, fmt.Errorf("%w: %s", ErrFolderMissing, folder)
	}

	if u.allowRename {
		name = u.freeName(ctx, folder, name)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, errors.Join(ErrUploadFailed, file.ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	stored, err := u.store.storage.Put(ctx, folder+"/"+name, src)
	if err != nil {
		u.log.ErrorContext(ctx, "failed to store upload",
			logger.Filename(fh.Filename),
			logger.Error(err),
		)
		return nil, errors.Join(ErrUploadFailed, ErrIO, err)
	}

	fileName := folder + "/" + name
	u.log.InfoContext(ctx, "attachment uploaded",
		logger.Filename(fileName),
		slog.Int64("size", stored.Size),
	)

	return &UploadResult{
		FileName:  fileName,
		Extension: ext,
		Path:      strings.TrimLeft(fileName, "/"),
		Size:      stored.Size,
		MIMEType:  stored.MIMEType,
	}, nil
}

// freeName returns name, or the first "base_N.ext" not yet present in folder.
func (u *Uploader) freeName(ctx context.Context, folder, name string) string {
	if !u.store.storage.Exists(ctx, folder+"/"+name) {
		return name
	}

	ext := file.Extension(name)
	base := name
	if ext != "" {
		base = strings.TrimSuffix(name, "."+ext)
		ext = "." + ext
	}

	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i) + ext
		if !u.store.storage.Exists(ctx, folder+"/"+candidate) {
			return candidate
		}
	}
}
