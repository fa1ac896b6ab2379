package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultDirPerm  os.FileMode = 0755
	DefaultFilePerm os.FileMode = 0644
)

// LocalStorage implements Storage on the local filesystem under baseDir.
type LocalStorage struct {
	baseDir  string // absolute
	baseURL  string
	dirPerm  os.FileMode
	filePerm os.FileMode
	confined bool
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithDirPerm sets the permissions used for directories created on demand.
func WithDirPerm(perm os.FileMode) LocalOption {
	return func(s *LocalStorage) {
		if perm != 0 {
			s.dirPerm = perm
		}
	}
}

// WithFilePerm sets the permissions of written files.
func WithFilePerm(perm os.FileMode) LocalOption {
	return func(s *LocalStorage) {
		if perm != 0 {
			s.filePerm = perm
		}
	}
}

// WithConfinement rejects every path that resolves outside the base directory.
func WithConfinement() LocalOption {
	return func(s *LocalStorage) {
		s.confined = true
	}
}

// NewLocalStorage creates a filesystem storage rooted at baseDir.
// baseDir is resolved to an absolute path and created if missing.
// baseURL is used as the prefix of public URLs.
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{
		baseDir:  absBaseDir,
		baseURL:  baseURL,
		dirPerm:  DefaultDirPerm,
		filePerm: DefaultFilePerm,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(absBaseDir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return s, nil
}

// BaseDir returns the absolute root directory.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Put writes r to path, creating missing parent directories.
// An existing file at path is truncated and overwritten.
// A partially written file is removed when the copy fails.
func (s *LocalStorage) Put(ctx context.Context, path string, r io.Reader) (*File, error) {
	if err := contextError(ctx); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.filePerm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	defer func() { _ = dst.Close() }()

	var (
		written int64
		head    []byte
		buf     = make([]byte, 32*1024)
	)
	for {
		if err := contextError(ctx); err != nil {
			_ = dst.Close()
			_ = os.Remove(absPath)
			return nil, err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			if len(head) < 512 {
				head = append(head, buf[:min(n, 512-len(head))]...)
			}
			nw, writeErr := dst.Write(buf[:n])
			if writeErr != nil {
				_ = dst.Close()
				_ = os.Remove(absPath)
				return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = dst.Close()
			_ = os.Remove(absPath)
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}

	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return &File{
		Filename:     filepath.Base(absPath),
		Size:         written,
		MIMEType:     http.DetectContentType(head),
		Extension:    Extension(absPath),
		Location:     absPath,
		RelativePath: filepath.ToSlash(strings.TrimPrefix(path, "/")),
	}, nil
}

// Exists reports whether a file or directory exists at path.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	if contextError(ctx) != nil {
		return false
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return false
	}

	_, err = os.Stat(absPath)
	return err == nil
}

// Delete removes a single file. Directories are never removed.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := contextError(ctx); err != nil {
		return err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}

	return nil
}

// Location returns the absolute filesystem path for path.
// Without confinement this is a plain join onto the base directory.
func (s *LocalStorage) Location(path string) string {
	absPath, err := s.resolvePath(path)
	if err != nil {
		return ""
	}
	return absPath
}

// URL returns the public URL for a file.
func (s *LocalStorage) URL(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	return s.baseURL + strings.TrimPrefix(path, "/")
}

// resolvePath maps a relative path onto the base directory.
// With confinement enabled the result must stay inside baseDir.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(path))
	if !s.confined {
		return absPath, nil
	}

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
