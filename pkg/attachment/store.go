package attachment

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/productattach/pkg/file"
	"github.com/dmitrymomot/productattach/pkg/logger"
)

// DeletableExtensions lists the extensions Delete is allowed to remove.
// Matching is case-sensitive.
var DeletableExtensions = []string{"pdf", "jpg", "png", "gif"}

// Store keeps attachment files under the media root using the dispersion
// layout. The media root is whatever the underlying storage is rooted at and
// does not change for the lifetime of the Store.
type Store struct {
	storage   file.Storage
	deletable []string
	log       *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for skipped and failed operations.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDeletableExtensions replaces the delete whitelist.
func WithDeletableExtensions(exts ...string) StoreOption {
	return func(s *Store) {
		s.deletable = slices.Clone(exts)
	}
}

// NewStore creates a Store on top of storage.
func NewStore(storage file.Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage:   storage,
		deletable: slices.Clone(DeletableExtensions),
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("attachment.store"))
	return s
}

// Root returns the location of the media root.
func (s *Store) Root() string {
	return s.storage.Location("")
}

// Exists reports whether filename is present at its dispersion path.
func (s *Store) Exists(ctx context.Context, filename string) bool {
	dispersion, err := DispersionPath(filename)
	if err != nil {
		return false
	}
	return s.storage.Exists(ctx, dispersion+"/"+filename)
}

// Save decodes base64 content and writes it to filename's dispersion path,
// creating the folders when missing and replacing an existing file.
// A nil error means the file was written.
func (s *Store) Save(ctx context.Context, filename, contentBase64 string) error {
	if contentBase64 == "" {
		return ErrEmptyContent
	}

	dispersion, err := DispersionPath(filename)
	if err != nil {
		return err
	}

	data, err := decodeBase64(contentBase64)
	if err != nil {
		return errors.Join(ErrInvalidContent, err)
	}

	if _, err := s.storage.Put(ctx, dispersion+"/"+filename, bytes.NewReader(data)); err != nil {
		s.log.ErrorContext(ctx, "failed to save attachment",
			logger.Filename(filename),
			logger.Error(err),
		)
		return errors.Join(ErrIO, err)
	}

	return nil
}

// TrySave is Save reduced to a success flag.
func (s *Store) TrySave(ctx context.Context, filename, contentBase64 string) bool {
	return s.Save(ctx, filename, contentBase64) == nil
}

// Put streams r to filename's dispersion path. It is the reader-based
// counterpart of Save used by the uploader.
func (s *Store) Put(ctx context.Context, filename string, r io.Reader) (*file.File, error) {
	dispersion, err := DispersionPath(filename)
	if err != nil {
		return nil, err
	}

	f, err := s.storage.Put(ctx, dispersion+"/"+filename, r)
	if err != nil {
		return nil, errors.Join(ErrIO, err)
	}
	return f, nil
}

// Delete removes the file at path, relative to the media root.
// Nothing happens unless the extension (text after the last dot) is
// whitelisted and the path has no "..". A missing file is not an error;
// only a failed removal of an existing file is reported.
func (s *Store) Delete(ctx context.Context, path string) error {
	ext := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		ext = path[i+1:]
	}

	if !slices.Contains(s.deletable, ext) {
		s.log.DebugContext(ctx, "delete skipped: extension not allowed", logger.Path(path))
		return nil
	}
	if strings.Contains(path, "..") {
		s.log.DebugContext(ctx, "delete skipped: path contains traversal", logger.Path(path))
		return nil
	}
	if !s.storage.Exists(ctx, path) {
		return nil
	}

	if err := s.storage.Delete(ctx, path); err != nil {
		if errors.Is(err, file.ErrFileNotFound) || errors.Is(err, file.ErrIsDirectory) {
			return nil
		}
		s.log.ErrorContext(ctx, "failed to delete attachment", logger.Path(path), logger.Error(err))
		return errors.Join(ErrIO, err)
	}

	return nil
}

// DispersionFolderPath returns the location of the folder filename is stored in.
func (s *Store) DispersionFolderPath(filename string) (string, error) {
	dispersion, err := DispersionPath(filename)
	if err != nil {
		return "", err
	}
	return s.storage.Location(dispersion), nil
}

// URL returns the public URL of a stored path.
func (s *Store) URL(path string) string {
	return s.storage.URL(path)
}

// decodeBase64 accepts padded and unpadded standard encoding and ignores
// line breaks and other whitespace, which MIME encoders insert.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
