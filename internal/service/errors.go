package service

import (
	"errors"

	"github.com/CameronXie/storefront/internal/domain"
)

// asStorageError wraps err as a StorageError unless it already is one.
func asStorageError(op string, err error) error {
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	return &domain.StorageError{Op: op, Err: err}
}
