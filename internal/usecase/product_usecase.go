package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kazeku-06/lv-backend/internal/domain"

	"github.com/sirupsen/logrus"
)

const priceScale = 2

type ProductUseCase interface {
	CreateProduct(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input *domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	validator    *Validator
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, v *Validator, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		validator:    v,
		log:          logger,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	if err := uc.validate(ctx, input, nil); err != nil {
		uc.log.Warnf("Use Case: Rejected product create: %v", err)
		return nil, err
	}

	product := &domain.Product{
		Name:       *input.Name,
		Price:      *input.Price,
		CategoryID: *input.CategoryID,
	}
	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, storeConstraintError(err)
	}

	uc.log.Infof("Use Case: Product '%s' created with ID %d", created.Name, created.ID)
	return uc.productRepo.GetProductByID(ctx, created.ID)
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	return uc.productRepo.GetProductByID(ctx, id)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id int64, input *domain.ProductInput) (*domain.Product, error) {
	current, err := uc.GetProductByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Product ID %d not available for update: %v", id, err)
		return nil, err
	}

	if err := uc.validate(ctx, input, input.Supplied); err != nil {
		uc.log.Warnf("Use Case: Rejected update for product ID %d: %v", id, err)
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Has("Name") {
		updates["name"] = *input.Name
	}
	if input.Has("Price") {
		updates["price"] = *input.Price
	}
	if input.Has("CategoryID") {
		updates["category_id"] = *input.CategoryID
	}
	if len(updates) == 0 {
		uc.log.Infof("Use Case: No fields supplied for product ID %d, returning current state", id)
		return current, nil
	}

	uc.log.Infof("Use Case: Applying partial update to product ID %d with fields: %v", id, input.Supplied)
	if err := uc.productRepo.UpdateProduct(ctx, id, updates); err != nil {
		uc.log.Errorf("Use Case: Repository failed partial update for product ID %d: %v", id, err)
		return nil, storeConstraintError(err)
	}

	return uc.productRepo.GetProductByID(ctx, id)
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Product ID %d deleted", id)
	return nil
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	return products, nil
}

// validate runs the tag rules and then checks that a supplied category_id
// names a stored category, so both kinds of failure are reported together.
func (uc *productUseCase) validate(ctx context.Context, input *domain.ProductInput, fields []string) error {
	verr := domain.NewValidationError()
	if err := uc.validator.Check(ctx, input, fields); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}

	// the price column keeps two decimal places
	if input.Has("Price") && input.Price != nil && len(verr.Fields["price"]) == 0 &&
		!input.Price.Equal(input.Price.Round(priceScale)) {
		verr.Add("price", DecimalPlacesMessage("price", priceScale))
	}

	if input.Has("CategoryID") && input.CategoryID != nil && len(verr.Fields["category_id"]) == 0 {
		exists, err := uc.categoryRepo.CategoryExists(ctx, *input.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			verr.Add("category_id", InvalidSelectionMessage("category_id"))
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// storeConstraintError turns a constraint the store enforced into the same
// validation failure the checks above produce.
func storeConstraintError(err error) error {
	verr := domain.NewValidationError()
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		verr.Add("category_id", InvalidSelectionMessage("category_id"))
	case errors.Is(err, domain.ErrPriceOutOfRange):
		verr.Add("price", fmt.Sprintf("The %s field must not be greater than %s.", Attribute("price"), domain.MaxPrice))
	default:
		return err
	}
	return verr
}
