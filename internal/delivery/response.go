package delivery

import (
	"errors"
	"net/http"

	"github.com/Kazeku-06/lv-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MessageBody struct {
	Message string `json:"message"`
}

type ValidationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

// ErrorResponse writes the body that belongs to err's class. Anything
// unclassified is logged and hidden behind a generic 500.
func ErrorResponse(c *gin.Context, log *logrus.Logger, err error) {
	var notFound *domain.NotFoundError
	var verr *domain.ValidationError

	switch statusCode := mapErrorToStatus(err); {
	case errors.As(err, &notFound):
		MessageResponse(c, statusCode, notFound.Entity+" not found")
	case errors.As(err, &verr):
		c.JSON(statusCode, ValidationBody{Message: verr.Summary(), Errors: verr.Fields})
	case errors.Is(err, domain.ErrCategoryInUse):
		MessageResponse(c, statusCode, "Product category has associated products")
	default:
		log.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"path":       c.Request.URL.Path,
		}).Errorf("Unhandled error: %v", err)
		MessageResponse(c, statusCode, "Internal server error")
	}
}

func mapErrorToStatus(err error) int {
	var notFound *domain.NotFoundError
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
