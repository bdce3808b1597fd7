package ai

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/nhle/daedaly/internal/ai"

// Gateway routes prompts to whichever provider is active at call time.
type Gateway struct {
	params  ParamReader
	secrets SecretReader
	opts    Options
	tracer  trace.Tracer
}

// NewGateway creates a Gateway. secrets may be nil.
func NewGateway(params ParamReader, secrets SecretReader, opts Options) *Gateway {
	opts = opts.withDefaults()
	return &Gateway{
		params:  params,
		secrets: secrets,
		opts:    opts,
		tracer:  otel.Tracer(tracerName),
	}
}

// Settings returns a fresh configuration snapshot.
func (g *Gateway) Settings(ctx context.Context) (Settings, error) {
	return LoadSettings(ctx, g.params, g.secrets)
}

// Chat sends prompt to the active provider exactly once.
func (g *Gateway) Chat(ctx context.Context, prompt string) (string, error) {
	s, err := g.Settings(ctx)
	if err != nil {
		return "", err
	}
	return g.chat(ctx, s, prompt)
}

func (g *Gateway) chat(ctx context.Context, s Settings, prompt string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "ai.chat", trace.WithAttributes(
		attribute.String("ai.provider", s.Provider.Key()),
		attribute.String("ai.model", s.Model()),
		attribute.Int("ai.prompt_chars", len(prompt)),
	))
	defer span.End()

	m, err := NewChatModel(s, g.opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	start := time.Now()
	text, err := m.Chat(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.opts.Logger.Warn("ai chat failed",
			zap.Stringer("provider", s.Provider),
			zap.String("model", s.Model()),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return "", err
	}

	span.SetAttributes(attribute.Int("ai.reply_chars", len(text)))
	g.opts.Logger.Debug("ai chat completed",
		zap.Stringer("provider", s.Provider),
		zap.String("model", s.Model()),
		zap.Duration("duration", elapsed),
		zap.Int("reply_chars", len(text)))
	return text, nil
}
