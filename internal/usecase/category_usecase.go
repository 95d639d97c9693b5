package usecase

import (
	"context"
	"fmt"

	"github.com/Kazeku-06/lv-backend/internal/domain"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	CreateCategory(ctx context.Context, input *domain.CategoryInput) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, input *domain.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	validator    *Validator
	log          *logrus.Logger
}

func NewCategoryUseCase(cRepo domain.CategoryRepository, pRepo domain.ProductRepository, v *Validator, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		validator:    v,
		log:          logger,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *domain.CategoryInput) (*domain.Category, error) {
	if err := uc.validator.Check(ctx, input, nil); err != nil {
		uc.log.Warnf("Use Case: Rejected category create: %v", err)
		return nil, err
	}

	category := &domain.Category{
		Name:        *input.Name,
		Description: input.Description,
	}
	created, err := uc.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *categoryUseCase) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}
	return uc.categoryRepo.GetCategoryByID(ctx, id)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id int64, input *domain.CategoryInput) (*domain.Category, error) {
	current, err := uc.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Category ID %d not available for update: %v", id, err)
		return nil, err
	}

	if err := uc.validator.Check(ctx, input, input.Supplied); err != nil {
		uc.log.Warnf("Use Case: Rejected update for category ID %d: %v", id, err)
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Has("Name") {
		updates["name"] = *input.Name
	}
	if input.Has("Description") {
		if input.Description == nil {
			updates["description"] = nil
		} else {
			updates["description"] = *input.Description
		}
	}
	if len(updates) == 0 {
		uc.log.Infof("Use Case: No fields supplied for category ID %d, returning current state", id)
		return current, nil
	}

	if err := uc.categoryRepo.UpdateCategory(ctx, id, updates); err != nil {
		uc.log.Errorf("Use Case: Repository failed to update category ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category ID %d updated", id)
	return uc.categoryRepo.GetCategoryByID(ctx, id)
}

// DeleteCategory refuses to remove a category that products still point at.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}

	inUse, err := uc.productRepo.HasProductsInCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("could not check category usage: %w", err)
	}
	if inUse {
		uc.log.Warnf("Use Case: Refusing to delete category ID %d with associated products", id)
		return domain.ErrCategoryInUse
	}

	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Category ID %d deleted", id)
	return nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}
	return categories, nil
}
