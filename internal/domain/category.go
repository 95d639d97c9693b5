package domain

import "context"

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, updates map[string]interface{}) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]Category, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

// CategoryInput is a create or patch request. Supplied names the struct
// fields the client sent; nil means all of them (create).
type CategoryInput struct {
	Name        *string `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`

	Supplied []string `json:"-" validate:"-"`
}

func (in *CategoryInput) Has(field string) bool {
	return supplied(in.Supplied, field)
}

func supplied(fields []string, field string) bool {
	if fields == nil {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
