package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxFilenameLength is the longest corrected filename accepted for storage.
// Longer names cannot be persisted in the attachment record column.
const MaxFilenameLength = 90

// File represents stored file metadata.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	Extension    string
	Location     string // absolute path for LocalStorage, s3:// URI for S3Storage
	RelativePath string
}

// Storage is a byte store rooted at a single location.
// All paths are relative to that root and use forward slashes.
type Storage interface {
	// Put writes r to path, creating intermediate directories and replacing
	// any existing object.
	Put(ctx context.Context, path string, r io.Reader) (*File, error)
	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) bool
	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error
	// Location returns where path lives in backend terms.
	Location(path string) string
	// URL returns the public URL for path.
	URL(path string) string
}

var (
	invalidFilenameChars = regexp.MustCompile(`(?i)[^a-z0-9_\-.]+`)
	underscoresOnly      = regexp.MustCompile(`^_+$`)
)

// CorrectFileName converts an arbitrary client filename into a storable one.
// Unicode letters are folded to their ASCII base form, every run of characters
// outside [a-z0-9_-.] becomes a single underscore, and a name made only of
// underscores is replaced with "file.<ext>".
//
// Example:
//
//	name, _ := file.CorrectFileName("Überblick Katalog (2024).pdf") // "Uberblick_Katalog_2024_.pdf"
func CorrectFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyFilename
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err == nil {
		name = folded
	}

	name = invalidFilenameChars.ReplaceAllString(name, "_")

	if len(name) > MaxFilenameLength {
		return "", fmt.Errorf("%w: %d characters, max %d", ErrFilenameTooLong, len(name), MaxFilenameLength)
	}

	ext := Extension(name)
	base := name
	if ext != "" {
		base = strings.TrimSuffix(name, "."+ext)
	}
	if underscoresOnly.MatchString(base) {
		name = "file." + ext
	}

	return name, nil
}

// Extension returns the extension of name without the leading dot,
// or an empty string when there is none.
func Extension(name string) string {
	return strings.TrimPrefix(path.Ext(name), ".")
}

// ValidateSize checks that an uploaded file is not larger than maxBytes.
// A non-positive maxBytes disables the check.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", fh.Size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

func contextError(ctx context.Context) error {
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrOperationTimeout, ctx.Err())
		}
		return fmt.Errorf("%w: %v", ErrOperationCanceled, ctx.Err())
	default:
		return nil
	}
}
