package delivery

import (
	"net/http"
	"strconv"

	"github.com/Kazeku-06/lv-backend/internal/domain"
	"github.com/Kazeku-06/lv-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/product-categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategoryByID)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	h.log.Debugf("Retrieved %d categories", len(categories))
	SuccessResponse(c, http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.log.Warnf("Failed to read body for create category: %v", err)
		ErrorResponse(c, h.log, err)
		return
	}
	input := categoryInput(p)
	if err := p.Err(); err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	created, err := h.useCase.CreateCategory(c.Request.Context(), input)
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	h.log.Infof("Category created successfully: ID %d, Name %s", created.ID, created.Name)
	SuccessResponse(c, http.StatusCreated, created)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		ErrorResponse(c, h.log, &domain.NotFoundError{Entity: domain.EntityCategory})
		return
	}

	category, err := h.useCase.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		ErrorResponse(c, h.log, &domain.NotFoundError{Entity: domain.EntityCategory})
		return
	}

	p, err := bindPayload(c)
	if err != nil {
		h.log.Warnf("Failed to read body for update category ID %d: %v", id, err)
		h.rejectUpdate(c, id, err)
		return
	}
	input := categoryInput(p)
	if err := p.Err(); err != nil {
		h.rejectUpdate(c, id, err)
		return
	}

	updated, err := h.useCase.UpdateCategory(c.Request.Context(), id, input)
	if err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	h.log.Infof("Category updated successfully: ID %d", updated.ID)
	SuccessResponse(c, http.StatusOK, updated)
}

// rejectUpdate reports a body error, unless the category is missing: a
// missing row wins over a malformed body.
func (h *CategoryHandler) rejectUpdate(c *gin.Context, id int64, err error) {
	if _, getErr := h.useCase.GetCategoryByID(c.Request.Context(), id); getErr != nil {
		err = getErr
	}
	ErrorResponse(c, h.log, err)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		ErrorResponse(c, h.log, &domain.NotFoundError{Entity: domain.EntityCategory})
		return
	}

	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		ErrorResponse(c, h.log, err)
		return
	}

	h.log.Infof("Category deleted successfully: ID %d", id)
	MessageResponse(c, http.StatusOK, domain.EntityCategory+" deleted successfully")
}

// pathID parses the :id segment. Anything that is not a positive integer
// can never match a row.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
