package usecase

import (
	"reflect"
	"testing"

	"github.com/optionmap/backend/internal/domain"
)

func TestNewMappingIndex(t *testing.T) {
	tests := []struct {
		name     string
		mappings []domain.Mapping
		want     MappingIndex
	}{
		{
			name:     "empty",
			mappings: nil,
			want:     MappingIndex{},
		},
		{
			name: "enabled mappings only",
			mappings: []domain.Mapping{
				{VendorOption: "s", EPOption: "small", Enabled: true},
				{VendorOption: "m", EPOption: "medium", Enabled: false},
			},
			want: MappingIndex{"s": "small"},
		},
		{
			name: "first enabled record wins",
			mappings: []domain.Mapping{
				{VendorOption: "s", EPOption: "small", Enabled: true},
				{VendorOption: "s", EPOption: "sm", Enabled: true},
			},
			want: MappingIndex{"s": "small"},
		},
		{
			name: "disabled record does not shadow a later enabled one",
			mappings: []domain.Mapping{
				{VendorOption: "s", EPOption: "old", Enabled: false},
				{VendorOption: "s", EPOption: "small", Enabled: true},
			},
			want: MappingIndex{"s": "small"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMappingIndex(tt.mappings)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewMappingIndex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMappingIndexApply(t *testing.T) {
	product := &domain.Product{
		Variants: []domain.Variant{
			{Options: []domain.Option{{Name: "Size", Value: "s"}, {Name: "Colour", Value: "red"}}},
			{Options: []domain.Option{{Name: "Size", Value: "m"}}},
		},
	}
	index := MappingIndex{"s": "small", "m": "s"}

	substituted := index.Apply(product)

	if substituted != 2 {
		t.Errorf("substituted = %d, want 2", substituted)
	}
	// Each option is resolved once; "m" -> "s" is not chased on to "small".
	want := [][]string{{"small", "red"}, {"s"}}
	for v, options := range want {
		for o, value := range options {
			if got := product.Variants[v].Options[o].Value; got != value {
				t.Errorf("variant %d option %d = %q, want %q", v, o, got, value)
			}
		}
	}
	if product.OptionCount() != 3 {
		t.Errorf("OptionCount() = %d, want 3", product.OptionCount())
	}
}

func TestCollectOptionValues(t *testing.T) {
	tests := []struct {
		name    string
		product *domain.Product
		want    []string
	}{
		{
			name:    "no variants",
			product: &domain.Product{},
			want:    []string{},
		},
		{
			name: "duplicates removed in first-seen order",
			product: &domain.Product{Variants: []domain.Variant{
				{Options: []domain.Option{{Value: "b"}, {Value: "a"}}},
				{Options: []domain.Option{{Value: "a"}, {Value: "c"}, {Value: "b"}}},
			}},
			want: []string{"b", "a", "c"},
		},
		{
			name: "empty value is still a value",
			product: &domain.Product{Variants: []domain.Variant{
				{Options: []domain.Option{{Value: ""}}},
			}},
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectOptionValues(tt.product)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CollectOptionValues() = %q, want %q", got, tt.want)
			}
		})
	}
}
