package storage

import "fmt"

// These codes mirror domain error codes to avoid circular imports.
// The handler layer maps them to HTTP status codes.
const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// StorageError is a storage failure carrying a domain-compatible code.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

var (
	ErrKeyRequired       = &StorageError{Code: codeInvalid, Message: "media key is required"}
	ErrBucketRequired    = &StorageError{Code: codeInvalid, Message: "S3 bucket name is required"}
	ErrPublicURLRequired = &StorageError{Code: codeInvalid, Message: "S3 public URL is required"}
)

// ErrFileNotFound creates an error for when a file is not found.
func ErrFileNotFound(key string) error {
	return &StorageError{Code: codeNotFound, Message: fmt.Sprintf("file not found: %s", key)}
}

// ErrInvalidKey creates an error for keys that are not plain relative paths.
func ErrInvalidKey(key string) error {
	return &StorageError{Code: codeInvalid, Message: fmt.Sprintf("invalid media key: %q", key)}
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return &StorageError{Code: codeInvalid, Message: fmt.Sprintf("unknown storage provider: %s", provider)}
}
