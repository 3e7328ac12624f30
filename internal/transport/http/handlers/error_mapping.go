package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bikram73/Netflix-Clone/internal/usecase"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
// An empty Message reuses the client-facing message carried by a ValidationError.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError resolves the provided error against known cases or falls back to a generic response.
// Fallback errors are attached to the gin context so the access log records the cause.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			message := cs.Message
			if message == "" {
				message = validationMessage(err, fallbackMessage)
			}
			c.JSON(cs.Status, ErrorResponse{Error: message})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(fallbackStatus, ErrorResponse{Error: fallbackMessage})
}

func validationMessage(err error, fallback string) string {
	var validation *usecase.ValidationError
	if errors.As(err, &validation) && validation.Message != "" {
		return validation.Message
	}
	return fallback
}

// NotFound answers any unmatched route or method, echoing the path and query.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse{
		Error: "Endpoint not found",
		Path:  c.Request.URL.RequestURI(),
	})
}
