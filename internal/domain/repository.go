package domain

import "context"

// MappingClient defines the interface for looking up option mappings in the catalog service
type MappingClient interface {
	FindMappings(ctx context.Context, query MappingQuery) ([]Mapping, error)
}
