package attachment

import "errors"

var (
	// ErrInvalidInput is returned when a filename is empty.
	ErrInvalidInput = errors.New("invalid input: filename is empty")
	// ErrEmptyContent is returned by Save when there is nothing to write.
	ErrEmptyContent = errors.New("file content is empty")
	// ErrInvalidContent is returned by Save when the content is not valid base64.
	ErrInvalidContent = errors.New("file content is not valid base64")
	// ErrIO wraps directory-creation and write failures.
	ErrIO = errors.New("attachment i/o failure")

	ErrNoUpload            = errors.New("file was not uploaded")
	ErrUploadFailed        = errors.New("upload failed")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
	ErrFolderMissing       = errors.New("destination folder does not exist")
)
