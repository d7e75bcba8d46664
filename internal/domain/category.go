package domain

import (
	"strings"
)

// CategoryName is the discriminant of a Category.
type CategoryName string

const (
	CategoryAll     CategoryName = "all"
	CategoryTech    CategoryName = "tech"
	CategoryClothes CategoryName = "clothes"
)

// Category is an immutable product category.
type Category struct {
	name CategoryName
}

// Name returns the normalised category name.
func (c Category) Name() CategoryName {
	return c.name
}

func (c Category) String() string {
	return string(c.name)
}

var categoryVariants = map[CategoryName]func() Category{
	CategoryAll:     func() Category { return Category{name: CategoryAll} },
	CategoryTech:    func() Category { return Category{name: CategoryTech} },
	CategoryClothes: func() Category { return Category{name: CategoryClothes} },
}

// NewCategory creates a Category from a name, ignoring surrounding spaces and case.
func NewCategory(name string) (Category, error) {
	create, ok := categoryVariants[normaliseCategoryName(name)]
	if !ok {
		return Category{}, &UnknownVariantError{Family: "category", Value: name}
	}

	return create(), nil
}

func normaliseCategoryName(name string) CategoryName {
	return CategoryName(strings.ToLower(strings.TrimSpace(name)))
}
