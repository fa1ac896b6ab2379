package file

import "errors"

var (
	ErrInvalidPath      = errors.New("invalid path")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrFilenameTooLong  = errors.New("filename is too long")
	ErrEmptyFilename    = errors.New("filename is empty")
	ErrNilFileHeader    = errors.New("file header is nil")
	ErrFileTooLarge     = errors.New("file size exceeds maximum allowed size")
	ErrFileNotFound     = errors.New("file not found")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrBucketNotFound   = errors.New("bucket not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrOperationTimeout = errors.New("operation timed out")

	// I/O failures are wrapped with the underlying error
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToReadFile        = errors.New("failed to read file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToStatPath        = errors.New("failed to stat path")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")
	ErrFailedToLoadConfig      = errors.New("failed to load AWS config")
	ErrOperationCanceled       = errors.New("operation canceled")
)
