package entity

import (
	"errors"
	"fmt"
)

var (
	// Storage errors
	ErrStorageUnavailable   = errors.New("storage unavailable or corrupt")
	ErrStorageQuotaExceeded = errors.New("storage quota exceeded")
	ErrStorageWriteFailure  = errors.New("storage write failed")

	// Domain errors
	ErrValidation          = errors.New("validation failed")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrInvalidAssetType    = errors.New("invalid asset type")
	ErrEmptyAsset          = errors.New("asset content is empty")
	ErrUnsupportedAsset    = errors.New("asset is not a supported image")
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StorageWriteError normalizes a backend write error into one of the two
// write-path sentinels while keeping the cause.
func StorageWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageQuotaExceeded) || errors.Is(err, ErrStorageWriteFailure) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
}
