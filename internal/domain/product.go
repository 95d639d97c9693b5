package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	// GetProductByID and ListProducts join the owning category.
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]Product, error)
	HasProductsInCategory(ctx context.Context, categoryID int64) (bool, error)
}

// MaxPrice is the largest value the NUMERIC(15,2) price column holds.
const MaxPrice = "9999999999999.99"

type ProductInput struct {
	Name       *string          `json:"name" validate:"required,max=255"`
	Price      *decimal.Decimal `json:"price" validate:"required,min=0,lte=9999999999999.99"`
	CategoryID *int64           `json:"category_id" validate:"required"`

	Supplied []string `json:"-" validate:"-"`
}

func (in *ProductInput) Has(field string) bool {
	return supplied(in.Supplied, field)
}
