// Package generate runs the AI generation actions: project analysis,
// task breakdown, task summary and task checklist.
package generate

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nhle/daedaly/internal/ai"
	"github.com/nhle/daedaly/internal/docs"
	"github.com/nhle/daedaly/internal/extract"
	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/reconcile"
)

const tracerName = "github.com/nhle/daedaly/internal/generate"

// Store is the part of the entity store the actions read and write.
type Store interface {
	reconcile.Store

	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	GetCompanyByID(ctx context.Context, id string) (*model.Company, error)
	GetProjectTeam(ctx context.Context, projectID string) ([]model.Member, error)
	GetMembersForUsers(ctx context.Context, userIDs []string) ([]model.Member, error)
	GetProjectDocuments(ctx context.Context, projectID string) ([]model.Document, error)

	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	UpdateTodo(ctx context.Context, todo model.Todo) error
	GetTodoDocuments(ctx context.Context, todoID string) ([]model.Document, error)
	ReplaceChecklist(ctx context.Context, todoID string, texts []string) error

	CreateNotification(ctx context.Context, n model.Notification) error
}

// Gateway sends prompts to the active provider.
type Gateway interface {
	Chat(ctx context.Context, prompt string) (string, error)
	Settings(ctx context.Context) (ai.Settings, error)
}

// Agent answers prompts through the secondary agent endpoint.
type Agent interface {
	Ask(ctx context.Context, baseURL, question string) (string, error)
}

// Service runs generation actions against the store.
type Service struct {
	store   Store
	gateway Gateway
	agent   Agent
	docs    *docs.Extractor
	engine  *reconcile.Engine
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewService creates a Service. agent may be nil, which disables the
// agent fallback; a nil logger disables logging.
func NewService(store Store, gateway Gateway, agent Agent, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		gateway: gateway,
		agent:   agent,
		docs:    docs.NewExtractor(),
		engine:  reconcile.NewEngine(store, logger),
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// ask sends prompt through the gateway and extracts the reply.
//
// Only a ProviderError goes to the agent endpoint, when one is configured;
// without one the result degrades to empty. Every other error, a
// cancelled context included, is returned, as are agent failures.
func (s *Service) ask(ctx context.Context, prompt string) (extract.Result, error) {
	text, err := s.gateway.Chat(ctx, prompt)
	if err == nil {
		return s.parse(text), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return extract.Result{}, ctxErr
	}
	if !ai.IsProviderError(err) {
		return extract.Result{}, err
	}

	s.logger.Warn("provider call failed", zap.Error(err))

	settings, err := s.gateway.Settings(ctx)
	if err != nil {
		return extract.Result{}, fmt.Errorf("reading agent settings: %w", err)
	}
	agentURL := strings.TrimSpace(settings.AgentURL)
	if agentURL == "" || s.agent == nil {
		return extract.Result{}, nil
	}

	s.logger.Info("asking agent endpoint", zap.String("agent_url", agentURL))
	text, err = s.agent.Ask(ctx, agentURL, prompt)
	if err != nil {
		return extract.Result{}, err
	}
	return s.parse(text), nil
}

func (s *Service) parse(text string) extract.Result {
	res := extract.Parse(text)
	if !res.Parsed() && !res.Empty() {
		s.logger.Warn("reply carries no JSON object, keeping raw text",
			zap.Int("reply_chars", len(text)))
	}
	return res
}
