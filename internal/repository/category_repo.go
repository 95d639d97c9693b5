package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kazeku-06/lv-backend/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	pqForeignKeyViolation = "23503"
	pqNumericOverflow     = "22003"

	categorySelect = `SELECT id, name, description, created_at, updated_at FROM product_categories`
)

var categoryColumns = []string{"name", "description"}

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
        INSERT INTO product_categories (name, description, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, category.Name, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	r.log.Infof("Repository: Category created with ID: %d, Name: %s", category.ID, category.Name)
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, categorySelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Category with ID %d not found", id)
			return nil, &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
		}
		r.log.Errorf("Repository: Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, id int64, updates map[string]interface{}) error {
	query, args, err := buildUpdate("product_categories", categoryColumns, id, updates)
	if err != nil {
		return err
	}

	r.log.Debugf("Repository: Executing partial update for category ID %d: %s", id, query)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repository: Failed to update category ID %d: %v", id, err)
		return fmt.Errorf("could not update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm category update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Category with ID %d not found for update", id)
		return &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}
	return nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warnf("Repository: Category ID %d is still referenced by products", id)
			return domain.ErrCategoryInUse
		}
		r.log.Errorf("Repository: Failed to delete category ID %d: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting category ID %d: %v", id, err)
		return fmt.Errorf("could not confirm category deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent category ID %d", id)
		return &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}

	r.log.Infof("Repository: Category deleted with ID: %d", id)
	return nil
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, categorySelect+` ORDER BY id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan category row: %v", err)
			return nil, fmt.Errorf("error scanning category data: %w", err)
		}
		categories = append(categories, *category)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during categories list iteration: %v", err)
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	r.log.Debugf("Repository: Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *postgresCategoryRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM product_categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.log.Errorf("Repository: Failed to check category ID %d: %v", id, err)
		return false, fmt.Errorf("could not check category existence: %w", err)
	}
	return exists, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		category    domain.Category
		description sql.NullString
	)
	if err := row.Scan(&category.ID, &category.Name, &description, &category.CreatedAt, &category.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		category.Description = &description.String
	}
	return &category, nil
}
