package usecase

import (
	"context"
	"encoding/json"

	"github.com/bikram73/Netflix-Clone/internal/core/port"
)

// CatalogService validates catalog lookups and forwards them to the metadata provider.
type CatalogService struct {
	provider port.MetadataProvider
}

func NewCatalogService(provider port.MetadataProvider) *CatalogService {
	return &CatalogService{provider: provider}
}

// Search relays a title search. An empty query never reaches the provider.
func (s *CatalogService) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, newValidationError(CodeMissingQuery, "Missing query parameter 'q'")
	}
	body, err := s.provider.SearchTitles(ctx, query)
	if err != nil {
		return nil, &UpstreamError{Op: "search titles", Err: err}
	}
	return body, nil
}

// Details relays the metadata of a single title.
func (s *CatalogService) Details(ctx context.Context, id string) (json.RawMessage, error) {
	if id == "" {
		return nil, newValidationError(CodeMissingMovieID, "Missing movie ID")
	}
	body, err := s.provider.GetTitleDetails(ctx, id)
	if err != nil {
		return nil, &UpstreamError{Op: "get title details", Err: err}
	}
	return body, nil
}
