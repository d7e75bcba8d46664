package graphql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/graphql-go/graphql"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/repository"
	"github.com/CameronXie/storefront/internal/service"
)

const placedAtLayout = "January 02, 2006, 03:04 PM"

type ProductService interface {
	GetProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
}

type AttributeService interface {
	GetAttributes(ctx context.Context, productID string) ([]domain.AttributeSet, error)
}

type PriceService interface {
	GetPrices(ctx context.Context, productID string) ([]domain.Price, error)
}

type CategoryService interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, items []service.CartItem, currencyLabel string) (*service.PlaceOrderResult, error)
	GetOrders(ctx context.Context, orderNumbers []string) ([]domain.Order, error)
}

// Services groups the services the resolvers delegate to.
type Services struct {
	Products   ProductService
	Attributes AttributeService
	Prices     PriceService
	Categories CategoryService
	Orders     OrderService
}

// Resolver maps GraphQL fields onto the services.
type Resolver struct {
	services Services
	logger   *slog.Logger
}

// NewResolver creates a new Resolver instance
func NewResolver(services Services, logger *slog.Logger) *Resolver {
	return &Resolver{
		services: services,
		logger:   logger,
	}
}

func (r *Resolver) categories(p graphql.ResolveParams) (any, error) {
	categories, err := r.services.Categories.GetCategories(p.Context)
	if err != nil {
		return nil, r.fail(p, err)
	}

	return categories, nil
}

func (r *Resolver) products(p graphql.ResolveParams) (any, error) {
	filter := repository.ProductFilter{
		Category:  stringArg(p.Args, "category"),
		Brand:     stringArg(p.Args, "brand"),
		ProductID: stringArg(p.Args, "id"),
	}

	products, err := r.services.Products.GetProducts(p.Context, filter)
	if err != nil {
		return nil, r.fail(p, err)
	}

	return products, nil
}

func (r *Resolver) productPrices(p graphql.ResolveParams) (any, error) {
	product, ok := p.Source.(domain.Product)
	if !ok {
		return nil, r.fail(p, fmt.Errorf("unexpected product source %T", p.Source))
	}

	prices, err := r.services.Prices.GetPrices(p.Context, product.ID)
	if err != nil {
		return nil, r.fail(p, err)
	}

	return prices, nil
}

func (r *Resolver) productAttributes(p graphql.ResolveParams) (any, error) {
	product, ok := p.Source.(domain.Product)
	if !ok {
		return nil, r.fail(p, fmt.Errorf("unexpected product source %T", p.Source))
	}

	sets, err := r.services.Attributes.GetAttributes(p.Context, product.ID)
	if err != nil {
		return nil, r.fail(p, err)
	}

	return sets, nil
}

func (r *Resolver) orders(p graphql.ResolveParams) (any, error) {
	orders, err := r.services.Orders.GetOrders(p.Context, stringListArg(p.Args, "orderNumbers"))
	if err != nil {
		return nil, r.fail(p, err)
	}

	return orders, nil
}

func (r *Resolver) placeOrder(p graphql.ResolveParams) (any, error) {
	items, err := cartItemsArg(p.Args)
	if err != nil {
		return nil, r.fail(p, err)
	}

	result, err := r.services.Orders.PlaceOrder(p.Context, items, stringArg(p.Args, "currencyLabel"))
	if err != nil {
		return nil, r.fail(p, err)
	}

	return result, nil
}

// fail logs err against the field being resolved and converts it for the client.
func (r *Resolver) fail(p graphql.ResolveParams, err error) error {
	r.logger.WarnContext(p.Context, "graphql_resolve_failed", "field", p.Info.FieldName, "error", err)
	return toResolverError(err)
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func stringListArg(args map[string]any, key string) []string {
	raw, _ := args[key].([]any)

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}

	return values
}

func cartItemsArg(args map[string]any) ([]service.CartItem, error) {
	raw, _ := args["cartItems"].([]any)

	items := make([]service.CartItem, 0, len(raw))
	for i, v := range raw {
		input, ok := v.(map[string]any)
		if !ok {
			return nil, &domain.InvalidInputError{
				Field:  "cartItems",
				Reason: fmt.Sprintf("Cart item %d is malformed.", i),
			}
		}

		quantity, _ := input["quantity"].(int)
		item := service.CartItem{
			ProductID: stringArg(input, "productId"),
			Quantity:  quantity,
		}

		selected, _ := input["selectedAttributes"].([]any)
		for _, s := range selected {
			attr, ok := s.(map[string]any)
			if !ok {
				continue
			}

			item.SelectedAttributes = append(item.SelectedAttributes, domain.SelectedAttribute{
				AttributeSetID: stringArg(attr, "attributeSetId"),
				AttributeID:    stringArg(attr, "attributeId"),
			})
		}

		items = append(items, item)
	}

	return items, nil
}
