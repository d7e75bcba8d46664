package service

import (
	"fmt"
	"strings"

	"github.com/CameronXie/storefront/internal/domain"
)

// CartItem is one requested order line.
type CartItem struct {
	ProductID          string
	Quantity           int
	SelectedAttributes []domain.SelectedAttribute
}

// ValidateCart checks the cart and currency label, returning the first violation found.
// A product may appear on one line only.
func ValidateCart(items []CartItem, currencyLabel string) error {
	if len(items) == 0 {
		return &domain.InvalidInputError{Field: "cartItems", Reason: "Cart must contain at least one item."}
	}

	products := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := validateCartItem(item); err != nil {
			return err
		}

		productID := strings.TrimSpace(item.ProductID)
		if _, ok := products[productID]; ok {
			return &domain.InvalidInputError{
				Field:  "cartItems",
				Reason: fmt.Sprintf("Product %s appears more than once in the cart.", productID),
			}
		}
		products[productID] = struct{}{}
	}

	if strings.TrimSpace(currencyLabel) == "" {
		return &domain.InvalidInputError{Field: "currencyLabel", Reason: "Currency label cannot be empty."}
	}

	return nil
}

func validateCartItem(item CartItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return emptyProductIDError()
	}

	if item.Quantity <= 0 {
		return &domain.InvalidInputError{Field: "quantity", Reason: "Quantity must be greater than zero."}
	}

	sets := make(map[string]struct{}, len(item.SelectedAttributes))
	for _, attr := range item.SelectedAttributes {
		if strings.TrimSpace(attr.AttributeSetID) == "" || strings.TrimSpace(attr.AttributeID) == "" {
			return &domain.InvalidInputError{Field: "selectedAttributes", Reason: "Selected attributes must have valid IDs."}
		}

		if _, ok := sets[attr.AttributeSetID]; ok {
			return &domain.InvalidInputError{
				Field:  "selectedAttributes",
				Reason: "Only one attribute can be selected per attribute set.",
			}
		}
		sets[attr.AttributeSetID] = struct{}{}
	}

	return nil
}
