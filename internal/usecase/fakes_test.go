package usecase

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/Kazeku-06/lv-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// --- In-memory store backing both fake repositories ---

type fakeStore struct {
	categories  map[int64]domain.Category
	products    map[int64]domain.Product
	nextID      int64
	listErr     error
	createErr   error
	updateCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: map[int64]domain.Category{},
		products:   map[int64]domain.Product{},
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) seedCategory(name string) domain.Category {
	now := time.Now()
	c := domain.Category{ID: s.id(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.categories[c.ID] = c
	return c
}

func (s *fakeStore) seedProduct(name string, price int64, categoryID int64) domain.Product {
	now := time.Now()
	p := domain.Product{ID: s.id(), Name: name, Price: decimal.NewFromInt(price), CategoryID: categoryID, CreatedAt: now, UpdatedAt: now}
	s.products[p.ID] = p
	return p
}

type fakeCategoryRepo struct{ s *fakeStore }

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	c.ID = r.s.id()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	r.s.categories[c.ID] = *c
	return c, nil
}

func (r *fakeCategoryRepo) GetCategoryByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}
	return &c, nil
}

func (r *fakeCategoryRepo) UpdateCategory(_ context.Context, id int64, updates map[string]interface{}) error {
	r.s.updateCalls++
	c, ok := r.s.categories[id]
	if !ok {
		return &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		if v == nil {
			c.Description = nil
		} else {
			d := v.(string)
			c.Description = &d
		}
	}
	r.s.categories[id] = c
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.s.categories[id]; !ok {
		return &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	out := []domain.Category{}
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCategoryRepo) CategoryExists(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.categories[id]
	return ok, nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	p.ID = r.s.id()
	r.s.products[p.ID] = *p
	return p, nil
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	c := r.s.categories[p.CategoryID]
	p.Category = &c
	return &p, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, id int64, updates map[string]interface{}) error {
	r.s.updateCalls++
	p, ok := r.s.products[id]
	if !ok {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(decimal.Decimal)
	}
	if v, ok := updates["category_id"]; ok {
		p.CategoryID = v.(int64)
	}
	r.s.products[id] = p
	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	ids := make([]int64, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []domain.Product{}
	for _, id := range ids {
		p, _ := r.GetProductByID(ctx, id)
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) HasProductsInCategory(_ context.Context, categoryID int64) (bool, error) {
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newUseCases(s *fakeStore) (CategoryUseCase, ProductUseCase) {
	cRepo := &fakeCategoryRepo{s: s}
	pRepo := &fakeProductRepo{s: s}
	v := NewValidator()
	return NewCategoryUseCase(cRepo, pRepo, v, quietLogger()), NewProductUseCase(pRepo, cRepo, v, quietLogger())
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
