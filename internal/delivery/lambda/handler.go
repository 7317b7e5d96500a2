package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/optionmap/backend/internal/delivery/reply"
	"github.com/optionmap/backend/internal/domain"
	"github.com/optionmap/backend/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// Transformer rewrites the option values of a raw product batch
type Transformer interface {
	Transform(ctx context.Context, body []byte) (*domain.Batch, *domain.TransformReport, error)
}

// Handler serves the option mapping function behind API Gateway
type Handler struct {
	transformer Transformer
	logger      *zap.Logger
}

// NewHandler creates a new Lambda handler
func NewHandler(transformer Transformer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		transformer: transformer,
		logger:      logger,
	}
}

// Handle processes one API Gateway proxy event
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := request.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := h.logger.With(zap.String("request_id", requestID))
	ctx = logging.WithLogger(ctx, logger)

	body, err := decodeBody(request)
	if err != nil {
		return h.fail(logger, err), nil
	}

	batch, _, err := h.transformer.Transform(ctx, body)
	if err != nil {
		return h.fail(logger, err), nil
	}

	return respond(http.StatusOK, batch), nil
}

func decodeBody(request events.APIGatewayProxyRequest) ([]byte, error) {
	if !request.IsBase64Encoded {
		return []byte(request.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(request.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedBody, err)
	}
	return body, nil
}

func (h *Handler) fail(logger *zap.Logger, err error) events.APIGatewayProxyResponse {
	reply.LogFailure(logger, err)
	return respond(reply.Status(err), reply.ErrorBody(err))
}

func respond(status int, body interface{}) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(reply.Internal(err.Error()))
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(payload),
	}
}
