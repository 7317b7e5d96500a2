package elasticpath

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/optionmap/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	mappingsPath   = "/v2/extensions/mdmappings"
	userAgent      = "OptionMap/1.0"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

// Config holds what the client needs to reach and authenticate to the catalog service
type Config struct {
	Host         string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client looks up option mappings in the Elastic Path mdmappings custom API
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	debug      bool
}

// NewClient creates a new mapping client authenticated with client credentials
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(cfg.Host, "/")

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: newTokenSource(baseURL, cfg.ClientID, cfg.ClientSecret, timeout),
				Base:   http.DefaultTransport,
			},
		},
		baseURL: baseURL,
		logger:  logger.Named("elasticpath"),
	}
}

// SetDebug enables or disables debug logging of outbound requests
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(msg string, fields ...zap.Field) {
	if c.debug {
		c.logger.Debug(msg, fields...)
	}
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMappingLookupFailure, err)
	}

	return resp, nil
}

// FindMappings returns the enabled mappings of query.CompanyID whose vendor option is
// one of query.VendorOptions. Records come back in the order the service sends them.
func (c *Client) FindMappings(ctx context.Context, query domain.MappingQuery) ([]domain.Mapping, error) {
	if len(query.VendorOptions) == 0 {
		return nil, domain.ErrInvalidMappingQuery
	}

	filter := Filter(
		Eq("company_id", query.CompanyID),
		In("vendor_option", query.VendorOptions...),
		Eq("enabled", "true"),
	)
	params := url.Values{}
	params.Set("filter", filter)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, mappingsPath, params.Encode())

	c.debugLog("fetching mappings",
		zap.String("company_id", query.CompanyID),
		zap.String("filter", filter),
	)

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := readLimitedBody(resp.Body, maxErrorBody)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrMappingLookupFailure, resp.StatusCode, string(body))
	}

	var list mappingRecords
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMappingLookupFailure, err)
	}

	mappings := c.decodeMappings(query.CompanyID, list.Data)
	c.debugLog("mappings fetched",
		zap.String("company_id", query.CompanyID),
		zap.Int("count", len(mappings)),
		zap.Int("skipped", len(list.Data)-len(mappings)),
	)
	return mappings, nil
}

// mappingRecords is the mdmappings list envelope with records left undecoded
type mappingRecords struct {
	Data []json.RawMessage `json:"data"`
}

// decodeMappings decodes each record on its own; a record that does not fit the
// mapping shape is skipped so the rest of the response stays usable.
func (c *Client) decodeMappings(companyID string, records []json.RawMessage) []domain.Mapping {
	mappings := make([]domain.Mapping, 0, len(records))
	for i, raw := range records {
		var m domain.Mapping
		if err := json.Unmarshal(raw, &m); err != nil {
			c.logger.Warn("skipping malformed mapping record",
				zap.String("company_id", companyID),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		mappings = append(mappings, m)
	}
	return mappings
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
