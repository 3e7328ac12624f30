package port

import (
	"context"
	"encoding/json"
)

// MetadataProvider fetches title metadata from the external catalog API.
// Responses are returned exactly as the upstream produced them.
type MetadataProvider interface {
	SearchTitles(ctx context.Context, query string) (json.RawMessage, error)
	GetTitleDetails(ctx context.Context, id string) (json.RawMessage, error)
}
