package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/repository"
)

func attributeRow(setID, setType, attrID string) repository.AttributeRow {
	return repository.AttributeRow{
		AttributeID:      attrID,
		Value:            attrID + "-value",
		DisplayValue:     attrID + "-display",
		AttributeSetID:   setID,
		AttributeSetName: setID,
		AttributeSetType: setType,
	}
}

func TestAttributeService_GetAttributes(t *testing.T) {
	testCases := map[string]struct {
		productID       string
		rows            []repository.AttributeRow
		repoError       error
		skipRepo        bool
		expected        []domain.AttributeSet
		expectedError   string
		expectedErrType error
	}{
		"should group attributes by set in first-seen order": {
			productID: "jacket",
			rows: []repository.AttributeRow{
				attributeRow("Size", "text", "S"),
				attributeRow("Color", "swatch", "Green"),
				attributeRow("Size", "text", "M"),
			},
			expected: []domain.AttributeSet{
				{
					ID:   "Size",
					Name: "Size",
					Type: domain.AttributeSetText,
					Items: []domain.Attribute{
						{ID: "S", Value: "S-value", DisplayValue: "S-display"},
						{ID: "M", Value: "M-value", DisplayValue: "M-display"},
					},
				},
				{
					ID:    "Color",
					Name:  "Color",
					Type:  domain.AttributeSetSwatch,
					Items: []domain.Attribute{{ID: "Green", Value: "Green-value", DisplayValue: "Green-display"}},
				},
			},
		},

		"should not duplicate attributes fed twice": {
			productID: "jacket",
			rows: []repository.AttributeRow{
				attributeRow("Size", "text", "S"),
				attributeRow("Size", "text", "S"),
			},
			expected: []domain.AttributeSet{
				{
					ID:    "Size",
					Name:  "Size",
					Type:  domain.AttributeSetText,
					Items: []domain.Attribute{{ID: "S", Value: "S-value", DisplayValue: "S-display"}},
				},
			},
		},

		"should return empty list for product without attributes": {
			productID: "gift-card",
			rows:      []repository.AttributeRow{},
			expected:  []domain.AttributeSet{},
		},

		"should return unknown variant error for unsupported set type": {
			productID:       "jacket",
			rows:            []repository.AttributeRow{attributeRow("Size", "dropdown", "S")},
			expectedError:   `error fetching attributes: failed to build attribute set Size: unknown attribute set type "dropdown"`,
			expectedErrType: &domain.UnknownVariantError{},
		},

		"should return invalid input error for empty product id": {
			productID:       " ",
			skipRepo:        true,
			expectedError:   "error fetching attributes: Product ID cannot be empty.",
			expectedErrType: &domain.InvalidInputError{},
		},

		"should wrap repository failure as storage error": {
			productID:       "jacket",
			repoError:       errors.New("timeout"),
			expectedError:   "error fetching attributes: storage fetch_attributes: timeout",
			expectedErrType: &domain.StorageError{},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			repo := new(mockAttributeRepository)
			if !tc.skipRepo {
				var rows any
				if tc.rows != nil {
					rows = tc.rows
				}
				repo.On("FetchAttributes", mock.Anything, tc.productID).Return(rows, tc.repoError)
			}

			sets, err := NewAttributeService(repo, discardLogger()).GetAttributes(context.Background(), tc.productID)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				assertErrorKind(t, err, tc.expectedErrType)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, sets)
			}

			repo.AssertExpectations(t)
		})
	}
}
