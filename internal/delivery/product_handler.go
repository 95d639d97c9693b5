package delivery

import (
	"net/http"

	"github.com/Kazeku-06/lv-backend/internal/domain"
	"github.com/Kazeku-06/lv-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProductByID)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	h.log.Debugf("Retrieved %d products", len(products))
	SuccessResponse(c, http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.log.Warnf("Failed to read body for create product: %v", err)
		ErrorResponse(c, h.log, err)
		return
	}
	input := productInput(p)
	if err := p.Err(); err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	created, err := h.useCase.CreateProduct(c.Request.Context(), input)
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	h.log.Infof("Product created successfully: ID %d, Name %s", created.ID, created.Name)
	SuccessResponse(c, http.StatusCreated, created)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		ErrorResponse(c, h.log, &domain.NotFoundError{Entity: domain.EntityProduct})
		return
	}

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		ErrorResponse(c, h.log, &domain.NotFoundError{Entity: domain.EntityProduct})
		return
	}

	p, err := bindPayload(c)
	if err != nil {
		h.log.Warnf("Failed to read body for update product ID %d: %v", id, err)
		h.rejectUpdate(c, id, err)
		return
	}
	input := productInput(p)
	if err := p.Err(); err != nil {
		h.rejectUpdate(c, id, err)
		return
	}

	updated, err := h.useCase.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	h.log.Infof("Product updated successfully: ID %d", updated.ID)
	SuccessResponse(c, http.StatusOK, updated)
}

func (h *ProductHandler) rejectUpdate(c *gin.Context, id int64, err error) {
	if _, getErr := h.useCase.GetProductByID(c.Request.Context(), id); getErr != nil {
		err = getErr
	}
	ErrorResponse(c, h.log, err)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		ErrorResponse(c, h.log, &domain.NotFoundError{Entity: domain.EntityProduct})
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	h.log.Infof("Product deleted successfully: ID %d", id)
	MessageResponse(c, http.StatusOK, domain.EntityProduct+" deleted successfully")
}
