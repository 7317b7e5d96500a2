package domain

import "errors"

var (
	// ErrInvalidBatch is returned when the request body has no usable 'data' array
	ErrInvalidBatch = errors.New("invalid request body: expected 'data' array with product information")

	// ErrMalformedBody is returned when the request body cannot be read or parsed as JSON
	ErrMalformedBody = errors.New("malformed request body")

	// ErrMappingLookupFailure is returned when the mapping service request fails
	ErrMappingLookupFailure = errors.New("mapping lookup failed")

	// ErrInvalidMappingQuery is returned when a lookup is attempted without vendor options
	ErrInvalidMappingQuery = errors.New("mapping query requires at least one vendor option")
)
