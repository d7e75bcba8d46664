package domain

import (
	"fmt"
)

// InvalidInputError represents malformed request data, detected before storage is touched.
type InvalidInputError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return e.Reason
}

// UnknownVariantError represents a discriminant outside the closed set of a type family.
type UnknownVariantError struct {
	Family string
	Value  string
}

// Error implements the error interface
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Family, e.Value)
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	Key      string
	Value    string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("no %s found", e.Resource)
	}

	return fmt.Sprintf("%s with %s %s not found", e.Resource, e.Key, e.Value)
}

// PricingError represents a product without a price in the requested currency.
type PricingError struct {
	ProductID string
	Currency  string
}

// Error implements the error interface
func (e *PricingError) Error() string {
	return fmt.Sprintf("no price for product %s in currency %s", e.ProductID, e.Currency)
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the store failure.
func (e *StorageError) Unwrap() error {
	return e.Err
}
