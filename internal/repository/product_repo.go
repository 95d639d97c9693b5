package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kazeku-06/lv-backend/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const productSelect = `
        SELECT p.id, p.name, p.price, p.category_id, p.created_at, p.updated_at,
               c.id, c.name, c.description, c.created_at, c.updated_at
        FROM products p
        JOIN product_categories c ON c.id = p.category_id`

var productColumns = []string{"name", "price", "category_id"}

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, price, category_id, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, product.Name, product.Price, product.CategoryID).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warnf("Repository: Attempted to create product with non-existent category ID: %d", product.CategoryID)
			return nil, domain.ErrUnknownCategory
		}
		if isPQError(err, pqNumericOverflow) {
			r.log.Warnf("Repository: Price %s for product '%s' overflows the price column", product.Price, product.Name)
			return nil, domain.ErrPriceOutOfRange
		}
		r.log.Errorf("Repository: Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Repository: Product created with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found", id)
			return nil, &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
		}
		r.log.Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	query, args, err := buildUpdate("products", productColumns, id, updates)
	if err != nil {
		return err
	}

	r.log.Debugf("Repository: Executing partial update for product ID %d: %s with args: %v", id, query, args)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warnf("Repository: Attempted to point product ID %d at a non-existent category", id)
			return domain.ErrUnknownCategory
		}
		if isPQError(err, pqNumericOverflow) {
			r.log.Warnf("Repository: Price for product ID %d overflows the price column", id)
			return domain.ErrPriceOutOfRange
		}
		r.log.Errorf("Repository: Failed to execute partial update for product ID %d: %v", id, err)
		return fmt.Errorf("could not partially update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm product update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Product with ID %d not found for update (0 rows affected)", id)
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	return nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	r.log.Infof("Repository: Product deleted with ID: %d", id)
	return nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+` ORDER BY p.id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	r.log.Debugf("Repository: Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) HasProductsInCategory(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		r.log.Errorf("Repository: Failed to check products for category %d: %v", categoryID, err)
		return false, fmt.Errorf("could not check products for category: %w", err)
	}
	return exists, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product     domain.Product
		category    domain.Category
		description sql.NullString
	)
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&category.ID,
		&category.Name,
		&description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		category.Description = &description.String
	}
	product.Category = &category
	return &product, nil
}

func isForeignKeyViolation(err error) bool {
	return isPQError(err, pqForeignKeyViolation)
}

func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
