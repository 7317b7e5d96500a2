package usecase

import "github.com/optionmap/backend/internal/domain"

// MappingIndex resolves vendor option values to canonical values
type MappingIndex map[string]string

// NewMappingIndex indexes the enabled mappings by vendor option. When several records
// share a vendor option the first one in service order is kept.
func NewMappingIndex(mappings []domain.Mapping) MappingIndex {
	index := make(MappingIndex, len(mappings))
	for _, m := range mappings {
		if !m.Enabled {
			continue
		}
		if _, seen := index[m.VendorOption]; seen {
			continue
		}
		index[m.VendorOption] = m.EPOption
	}
	return index
}

// Lookup returns the canonical value for a vendor option value
func (idx MappingIndex) Lookup(vendorOption string) (string, bool) {
	canonical, ok := idx[vendorOption]
	return canonical, ok
}

// Apply rewrites the option values of product in place and returns how many options
// were substituted. Options without a mapping keep their value.
func (idx MappingIndex) Apply(product *domain.Product) int {
	substituted := 0
	for v := range product.Variants {
		options := product.Variants[v].Options
		for o := range options {
			if canonical, ok := idx.Lookup(options[o].Value); ok {
				options[o].Value = canonical
				substituted++
			}
		}
	}
	return substituted
}

// CollectOptionValues returns the distinct option values across all variants of
// product, in first-seen order.
func CollectOptionValues(product *domain.Product) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0, product.OptionCount())
	for _, variant := range product.Variants {
		for _, option := range variant.Options {
			if _, ok := seen[option.Value]; ok {
				continue
			}
			seen[option.Value] = struct{}{}
			values = append(values, option.Value)
		}
	}
	return values
}
