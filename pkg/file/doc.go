// Package file provides byte storage backends for attachment files.
//
// A Storage is rooted at a single location (a directory on the local filesystem
// or a key prefix inside an S3 bucket) and addresses every object by a path
// relative to that root. Callers above this package decide how relative paths
// are laid out; the backends only write, probe, delete and link to them.
//
// # Backends
//
//   - LocalStorage: files under a base directory, directories created on demand.
//   - S3Storage: objects in an S3-compatible bucket under an optional key prefix.
//
// # Usage
//
//	storage, err := file.NewLocalStorage("/var/www/pub/media/productattach", "https://shop.example.com/media/productattach")
//	if err != nil {
//		return err
//	}
//
//	f, err := storage.Put(ctx, "m/a/manual.pdf", bytes.NewReader(data))
//	if err != nil {
//		return err
//	}
//	url := storage.URL(f.RelativePath)
//
// # Path handling
//
// LocalStorage joins relative paths onto its base directory without further
// checks unless WithConfinement is set, in which case any path resolving
// outside the base directory fails with ErrInvalidPath. S3Storage always
// rejects keys containing "..".
//
// # Filenames
//
// CorrectFileName normalizes an uploaded filename the way the storefront
// expects stored names to look: unicode is folded to ASCII, unsupported
// characters become underscores and names longer than MaxFilenameLength are
// rejected.
//
// # Error Handling
//
// Backends return the sentinel errors declared in errors.go wrapped with the
// underlying cause, so callers can use errors.Is:
//
//	if errors.Is(err, file.ErrFailedToCreateDirectory) {
//		// media root is not writable
//	}
//
// S3 errors are mapped onto the same sentinels where a mapping exists.
package file
