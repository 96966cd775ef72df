package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"guardrails/internal/agent"
	apperrors "guardrails/internal/errors"
	"guardrails/internal/metrics"
)

// AgentQuerier forwards a query to the agent engine.
type AgentQuerier interface {
	Query(ctx context.Context, req agent.QueryRequest) (json.RawMessage, error)
}

// chatService proxies user queries to the agent engine.
type chatService struct {
	agent   AgentQuerier
	metrics *metrics.Metrics
}

// NewChatService creates a new ChatServicer. m may be nil.
func NewChatService(a AgentQuerier, m *metrics.Metrics) ChatServicer {
	return &chatService{agent: a, metrics: m}
}

// Query validates req and forwards it once. Cancellation of ctx is not
// propagated to the engine call; the client timeout bounds it instead.
func (s *chatService) Query(ctx context.Context, req ChatRequest) (json.RawMessage, error) {
	if req.UserID == nil || *req.UserID == 0 || isBlank(req.Query) {
		return nil, apperrors.ErrMissingChatFields
	}

	start := time.Now()
	data, err := s.agent.Query(context.WithoutCancel(ctx), agent.QueryRequest{
		UserID:  *req.UserID,
		Query:   *req.Query,
		Tools:   req.Tools,
		Context: req.Context,
	})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		var upErr *agent.UpstreamError
		if errors.As(err, &upErr) {
			s.metrics.ObserveAgentQuery(metrics.OutcomeUpstreamError, elapsed)
			return nil, apperrors.Relay(apperrors.ErrAgentEngine, upErr.StatusCode, upErr.Message, err)
		}
		s.metrics.ObserveAgentQuery(metrics.OutcomeTransportError, elapsed)
		return nil, apperrors.Wrap(apperrors.ErrQueryFailed, err)
	}

	s.metrics.ObserveAgentQuery(metrics.OutcomeSuccess, elapsed)
	return data, nil
}
