package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/CameronXie/storefront/internal/domain"
	"github.com/CameronXie/storefront/internal/service"
)

// NewSchema builds the storefront schema backed by r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	currencyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Currency",
		Fields: graphql.Fields{
			"label": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Currency).Label(), nil
				},
			},
			"symbol": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Currency).Symbol(), nil
				},
			},
		},
	})

	priceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Price",
		Fields: graphql.Fields{
			"amount": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Price).Amount.InexactFloat64(), nil
				},
			},
			"currency": &graphql.Field{
				Type: currencyType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Price).Currency, nil
				},
			},
		},
	})

	attributeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Attribute",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Attribute).ID, nil
				},
			},
			"value": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Attribute).Value, nil
				},
			},
			"displayValue": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Attribute).DisplayValue, nil
				},
			},
		},
	})

	attributeSetType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AttributeSet",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.AttributeSet).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.AttributeSet).Name, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return string(p.Source.(domain.AttributeSet).Type), nil
				},
			},
			"items": &graphql.Field{
				Type: graphql.NewList(attributeType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.AttributeSet).Items, nil
				},
			},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Category).String(), nil
				},
			},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.String,
				Resolve: productField(func(p domain.Product) any { return p.ID }),
			},
			"name": &graphql.Field{
				Type:    graphql.String,
				Resolve: productField(func(p domain.Product) any { return p.Name }),
			},
			"inStock": &graphql.Field{
				Type:    graphql.Boolean,
				Resolve: productField(func(p domain.Product) any { return p.InStock }),
			},
			"gallery": &graphql.Field{
				Type:    graphql.NewList(graphql.String),
				Resolve: productField(func(p domain.Product) any { return p.Gallery }),
			},
			"description": &graphql.Field{
				Type:    graphql.String,
				Resolve: productField(func(p domain.Product) any { return p.Description }),
			},
			"category": &graphql.Field{
				Type:    graphql.String,
				Resolve: productField(func(p domain.Product) any { return p.Category.String() }),
			},
			"brand": &graphql.Field{
				Type:    graphql.String,
				Resolve: productField(func(p domain.Product) any { return p.Brand }),
			},
			"prices": &graphql.Field{
				Type:    graphql.NewList(priceType),
				Resolve: r.productPrices,
			},
			"attributes": &graphql.Field{
				Type:    graphql.NewList(attributeSetType),
				Resolve: r.productAttributes,
			},
		},
	})

	selectedAttributeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SelectedAttribute",
		Fields: graphql.Fields{
			"attributeSetId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.SelectedAttribute).AttributeSetID, nil
				},
			},
			"attributeId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.SelectedAttribute).AttributeID, nil
				},
			},
		},
	})

	orderProductType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderProduct",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: productType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.OrderProduct).Product, nil
				},
			},
			"quantity": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.OrderProduct).Quantity, nil
				},
			},
			"selectedAttributes": &graphql.Field{
				Type: graphql.NewList(selectedAttributeType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.OrderProduct).SelectedAttributes, nil
				},
			},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"orderNumber": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Order).OrderNumber, nil
				},
			},
			"totalAmount": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Order).TotalAmount.InexactFloat64(), nil
				},
			},
			"currency": &graphql.Field{
				Type: currencyType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Order).Currency, nil
				},
			},
			"placedAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Order).PlacedAt.Format(placedAtLayout), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(orderProductType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Order).Products, nil
				},
			},
		},
	})

	placeOrderResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PlaceOrderResponse",
		Fields: graphql.Fields{
			"orderNumber": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*service.PlaceOrderResult).OrderNumber, nil
				},
			},
		},
	})

	selectedAttributeInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SelectedAttributeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"attributeSetId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"attributeId":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	cartItemInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CartItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"quantity":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"selectedAttributes": &graphql.InputObjectFieldConfig{Type: graphql.NewList(selectedAttributeInputType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type:    graphql.NewList(categoryType),
				Resolve: r.categories,
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"brand":    &graphql.ArgumentConfig{Type: graphql.String},
					"id":       &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.products,
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"orderNumbers": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
					},
				},
				Resolve: r.orders,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"placeOrder": &graphql.Field{
				Type: placeOrderResponseType,
				Args: graphql.FieldConfigArgument{
					"cartItems": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(cartItemInputType))),
					},
					"currencyLabel": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.placeOrder,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build_schema: %w", err)
	}

	return schema, nil
}

func productField(get func(domain.Product) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		return get(p.Source.(domain.Product)), nil
	}
}
