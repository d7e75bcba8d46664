package domain

import (
	"strings"

	"github.com/CameronXie/storefront/pkg/orderedmap"
)

// AttributeSetType is the discriminant of an AttributeSet.
type AttributeSetType string

const (
	AttributeSetText   AttributeSetType = "text"
	AttributeSetSwatch AttributeSetType = "swatch"
)

// Attribute is one selectable value of an attribute set.
type Attribute struct {
	ID           string
	Value        string
	DisplayValue string
}

// AttributeSet groups the attributes a product can be ordered with.
type AttributeSet struct {
	ID    string
	Name  string
	Type  AttributeSetType
	Items []Attribute
}

var attributeSetVariants = map[AttributeSetType]func(id, name string) AttributeSet{
	AttributeSetText: func(id, name string) AttributeSet {
		return AttributeSet{ID: id, Name: name, Type: AttributeSetText}
	},
	AttributeSetSwatch: func(id, name string) AttributeSet {
		return AttributeSet{ID: id, Name: name, Type: AttributeSetSwatch}
	},
}

// NewAttributeSet creates an empty AttributeSet of the given type.
func NewAttributeSet(setType, id, name string) (AttributeSet, error) {
	create, ok := attributeSetVariants[AttributeSetType(strings.ToLower(strings.TrimSpace(setType)))]
	if !ok {
		return AttributeSet{}, &UnknownVariantError{Family: "attribute set type", Value: setType}
	}

	return create(id, name), nil
}

// AttributeSetBuilder collects attributes for a set, keeping the first attribute seen per id.
type AttributeSetBuilder struct {
	set   AttributeSet
	items *orderedmap.Map[string, Attribute]
}

// NewAttributeSetBuilder creates a builder for a set of the given type.
func NewAttributeSetBuilder(setType, id, name string) (*AttributeSetBuilder, error) {
	set, err := NewAttributeSet(setType, id, name)
	if err != nil {
		return nil, err
	}

	return &AttributeSetBuilder{
		set:   set,
		items: orderedmap.New[string, Attribute](),
	}, nil
}

// AddItem attaches attr unless an attribute with the same id is already present.
func (b *AttributeSetBuilder) AddItem(attr Attribute) {
	b.items.SetIfAbsent(attr.ID, attr)
}

// Build returns the attribute set with its items in insertion order.
func (b *AttributeSetBuilder) Build() AttributeSet {
	set := b.set
	set.Items = b.items.Values()
	return set
}
