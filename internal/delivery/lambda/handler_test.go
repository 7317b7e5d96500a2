package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/optionmap/backend/internal/domain"
	"github.com/optionmap/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMappingClient struct {
	mappings []domain.Mapping
	err      error
	queries  []domain.MappingQuery
}

func (s *stubMappingClient) FindMappings(ctx context.Context, query domain.MappingQuery) ([]domain.Mapping, error) {
	s.queries = append(s.queries, query)
	return s.mappings, s.err
}

const shirtRequest = `{"data":[{"id":"p1","companyId":"C1","title":"Shirt","variants":[{"sku":"shirt-m","options":[{"name":"Size","value":"medium"},{"name":"Color","value":"navy"}]}]}]}`

func newHandler(client domain.MappingClient) *Handler {
	return NewHandler(usecase.NewOptionMappingService(client, nil), nil)
}

func TestHandle(t *testing.T) {
	t.Run("maps option values and echoes the batch", func(t *testing.T) {
		client := &stubMappingClient{mappings: []domain.Mapping{
			{CompanyID: "C1", VendorOption: "medium", EPOption: "m", Enabled: true},
		}}

		resp, err := newHandler(client).Handle(context.Background(), events.APIGatewayProxyRequest{Body: shirtRequest})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Headers["Content-Type"])
		assert.JSONEq(t,
			`{"data":[{"id":"p1","companyId":"C1","title":"Shirt","variants":[{"sku":"shirt-m","options":[{"name":"Size","value":"m"},{"name":"Color","value":"navy"}]}]}]}`,
			resp.Body)
		require.Len(t, client.queries, 1)
		assert.Equal(t, domain.MappingQuery{CompanyID: "C1", VendorOptions: []string{"medium", "navy"}}, client.queries[0])
	})

	t.Run("decodes base64 bodies", func(t *testing.T) {
		client := &stubMappingClient{}
		request := events.APIGatewayProxyRequest{
			Body:            base64.StdEncoding.EncodeToString([]byte(shirtRequest)),
			IsBase64Encoded: true,
		}

		resp, err := newHandler(client).Handle(context.Background(), request)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, shirtRequest, resp.Body)
	})

	t.Run("passes products through when lookup fails", func(t *testing.T) {
		client := &stubMappingClient{err: errors.New("connection refused")}

		resp, err := newHandler(client).Handle(context.Background(), events.APIGatewayProxyRequest{Body: shirtRequest})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, shirtRequest, resp.Body)
	})

	t.Run("returns 400 without data array", func(t *testing.T) {
		resp, err := newHandler(&stubMappingClient{}).Handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"products":[]}`})
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
		assert.Equal(t, domain.ErrInvalidBatch.Error(), body["error"])
	})

	t.Run("returns 500 for malformed JSON", func(t *testing.T) {
		resp, err := newHandler(&stubMappingClient{}).Handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"data":`})
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Internal server error", body["error"])
		assert.NotEmpty(t, body["message"])
	})

	t.Run("returns 500 for undecodable base64", func(t *testing.T) {
		client := &stubMappingClient{}
		request := events.APIGatewayProxyRequest{Body: "not base64!", IsBase64Encoded: true}

		resp, err := newHandler(client).Handle(context.Background(), request)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Empty(t, client.queries)
	})
}
