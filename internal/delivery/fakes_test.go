package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kazeku-06/lv-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeCategoryUseCase struct {
	create func(ctx context.Context, input *domain.CategoryInput) (*domain.Category, error)
	get    func(ctx context.Context, id int64) (*domain.Category, error)
	update func(ctx context.Context, id int64, input *domain.CategoryInput) (*domain.Category, error)
	delete func(ctx context.Context, id int64) error
	list   func(ctx context.Context) ([]domain.Category, error)
}

func (f *fakeCategoryUseCase) CreateCategory(ctx context.Context, input *domain.CategoryInput) (*domain.Category, error) {
	return f.create(ctx, input)
}

func (f *fakeCategoryUseCase) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	return f.get(ctx, id)
}

func (f *fakeCategoryUseCase) UpdateCategory(ctx context.Context, id int64, input *domain.CategoryInput) (*domain.Category, error) {
	return f.update(ctx, id, input)
}

func (f *fakeCategoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func (f *fakeCategoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.list(ctx)
}

type fakeProductUseCase struct {
	create func(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)
	get    func(ctx context.Context, id int64) (*domain.Product, error)
	update func(ctx context.Context, id int64, input *domain.ProductInput) (*domain.Product, error)
	delete func(ctx context.Context, id int64) error
	list   func(ctx context.Context) ([]domain.Product, error)
}

func (f *fakeProductUseCase) CreateProduct(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	return f.create(ctx, input)
}

func (f *fakeProductUseCase) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return f.get(ctx, id)
}

func (f *fakeProductUseCase) UpdateProduct(ctx context.Context, id int64, input *domain.ProductInput) (*domain.Product, error) {
	return f.update(ctx, id, input)
}

func (f *fakeProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func (f *fakeProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.list(ctx)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRouter(categories *fakeCategoryUseCase, products *fakeProductUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := quietLogger()
	return NewRouter(logger,
		NewHealthHandler(fakePinger{}, time.Second, logger),
		NewCategoryHandler(categories, logger),
		NewProductHandler(products, logger),
	)
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return performRequest(router, req)
}

func performRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func strPtr(s string) *string { return &s }
