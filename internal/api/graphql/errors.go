package graphql

import (
	"errors"

	"github.com/CameronXie/storefront/internal/domain"
)

const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeUnknownVariant = "UNKNOWN_VARIANT"
	CodeNotFound       = "NOT_FOUND"
	CodePricing        = "PRICING_ERROR"
	CodeInternal       = "INTERNAL"

	internalErrorMessage = "Internal server error."
)

// resolverError is reported to clients with a code in the error extensions.
type resolverError struct {
	message    string
	extensions map[string]any
}

func (e *resolverError) Error() string {
	return e.message
}

// Extensions is picked up by graphql-go when formatting the error.
func (e *resolverError) Extensions() map[string]any {
	return e.extensions
}

// toResolverError classifies err by its domain error type.
// Storage and unexpected failures are reported without their details.
func toResolverError(err error) error {
	var (
		invalidInput   *domain.InvalidInputError
		unknownVariant *domain.UnknownVariantError
		notFound       *domain.NotFoundError
		pricing        *domain.PricingError
	)

	switch {
	case errors.As(err, &invalidInput):
		return &resolverError{
			message:    invalidInput.Error(),
			extensions: map[string]any{"code": CodeInvalidInput, "field": invalidInput.Field},
		}
	case errors.As(err, &unknownVariant):
		return &resolverError{
			message:    unknownVariant.Error(),
			extensions: map[string]any{"code": CodeUnknownVariant},
		}
	case errors.As(err, &notFound):
		return &resolverError{
			message:    notFound.Error(),
			extensions: map[string]any{"code": CodeNotFound},
		}
	case errors.As(err, &pricing):
		return &resolverError{
			message:    pricing.Error(),
			extensions: map[string]any{"code": CodePricing},
		}
	default:
		return &resolverError{
			message:    internalErrorMessage,
			extensions: map[string]any{"code": CodeInternal},
		}
	}
}
