package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bikram73/Netflix-Clone/internal/usecase"
)

// CatalogService is the metadata lookup behaviour the handlers need.
type CatalogService interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Details(ctx context.Context, id string) (json.RawMessage, error)
}

var catalogErrorCases = []ErrorCase{
	{Err: usecase.ErrValidation, Status: http.StatusBadRequest},
}

const (
	msgFetchFailed  = "Failed to fetch data"
	jsonContentType = "application/json; charset=utf-8"
)

// CatalogHandler relays title searches and details from the metadata API.
type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes binds search and details on the given group.
func (h *CatalogHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/search", h.Search)
	r.GET("/movie", h.Movie)
	r.GET("/movie/:id", h.Movie)
}

// Search relays GET ?q= to the upstream title search.
func (h *CatalogHandler) Search(c *gin.Context) {
	body, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// Movie relays the details of one title.
func (h *CatalogHandler) Movie(c *gin.Context) {
	body, err := h.catalog.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}
